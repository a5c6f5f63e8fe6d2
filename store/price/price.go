package price

import (
	"context"
	"math/big"
	"time"

	"dsc/core"
	"dsc/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type priceStore struct {
	db *gorm.DB
}

// New new price store
func New(db *gorm.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	store.RegisterMigrate(func(db *gorm.DB) error {
		return db.AutoMigrate(&core.PriceRound{})
	})
}

// Save store answer as the next round of feed
func (s *priceStore) Save(ctx context.Context, feed string, answer *big.Int, updatedAt time.Time) (*core.PriceRound, error) {
	var round core.PriceRound
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := tx.Where("feed = ?", feed).Limit(1).Find(&round)
		if r.Error != nil {
			return r.Error
		}

		round.Feed = feed
		round.RoundID++
		round.Answer = answer.String()
		round.UpdatedAt = updatedAt
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&round).Error
	})
	if err != nil {
		return nil, err
	}

	return &round, nil
}

func (s *priceStore) Find(ctx context.Context, feed string) (*core.PriceRound, error) {
	var round core.PriceRound
	r := s.db.WithContext(ctx).Where("feed = ?", feed).Limit(1).Find(&round)
	if r.Error != nil {
		return nil, r.Error
	}

	if r.RowsAffected == 0 {
		return nil, core.ErrPriceNotFound
	}

	return &round, nil
}

func (s *priceStore) All(ctx context.Context) ([]*core.PriceRound, error) {
	var rounds []*core.PriceRound
	if err := s.db.WithContext(ctx).Order("feed").Find(&rounds).Error; err != nil {
		return nil, err
	}

	return rounds, nil
}
