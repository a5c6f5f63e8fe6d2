package core

import (
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

// EventType event type
type EventType string

const (
	EventCollateralDeposited EventType = "CollateralDeposited"
	EventCollateralRedeemed  EventType = "CollateralRedeemed"
	EventDebtMinted          EventType = "DebtMinted"
	EventDebtBurned          EventType = "DebtBurned"
	EventLiquidated          EventType = "Liquidated"
)

const (
	// EventKeyDebtCovered debt covered by a liquidation
	EventKeyDebtCovered = "debt_covered"
	// EventKeyBonus bonus collateral of a liquidation
	EventKeyBonus = "bonus"
	// EventKeyStartHealthFactor health factor before liquidation
	EventKeyStartHealthFactor = "start_health_factor"
	// EventKeyEndHealthFactor health factor after liquidation
	EventKeyEndHealthFactor = "end_health_factor"
)

// Event ledger event, persisted only when its operation commits
type Event struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID   string         `gorm:"size:36;index" json:"trace_id"`
	Type      EventType      `gorm:"size:32;index" json:"type"`
	From      string         `gorm:"size:128;index" json:"from"`
	To        string         `gorm:"size:128" json:"to,omitempty"`
	Asset     string         `gorm:"size:128" json:"asset,omitempty"`
	Amount    string         `gorm:"size:80" json:"amount"`
	Data      types.JSONText `gorm:"type:text" json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// EventExtraData extra data of an event
type EventExtraData map[string]interface{}

// NewEventExtra new event extra instance
func NewEventExtra() EventExtraData {
	return make(EventExtraData)
}

// Put put data
func (d EventExtraData) Put(key string, value interface{}) {
	d[key] = value
}

// Format format as json, {} on failure
func (d EventExtraData) Format() types.JSONText {
	bs, e := json.Marshal(d)
	if e != nil {
		return types.JSONText("{}")
	}

	return types.JSONText(bs)
}

// NewEvent new event with amount in base units
func NewEvent(typ EventType, from, to, asset string, amount *uint256.Int) *Event {
	return &Event{
		Type:   typ,
		From:   from,
		To:     to,
		Asset:  asset,
		Amount: amount.Dec(),
	}
}

// WithData attach extra data
func (e *Event) WithData(data EventExtraData) *Event {
	e.Data = data.Format()
	return e
}

// AmountValue amount parsed back into base units
func (e *Event) AmountValue() *uint256.Int {
	v, err := uint256.FromDecimal(e.Amount)
	if err != nil {
		return new(uint256.Int)
	}

	return v
}
