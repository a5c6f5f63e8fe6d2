package core

import (
	"strings"
)

// SupportedAsset collateral asset paired with its price feed
type SupportedAsset struct {
	Asset     string `json:"asset"`
	PriceFeed string `json:"price_feed"`
}

// AssetRegistry immutable collateral list, fixed at construction
type AssetRegistry struct {
	assets []SupportedAsset
	feeds  map[string]string
}

// NewAssetRegistry pair assets and price feeds by position
func NewAssetRegistry(assets, priceFeeds []string) (*AssetRegistry, error) {
	if len(assets) != len(priceFeeds) {
		return nil, ErrConfigMismatch
	}

	r := &AssetRegistry{
		assets: make([]SupportedAsset, 0, len(assets)),
		feeds:  make(map[string]string, len(assets)),
	}

	for idx, asset := range assets {
		asset = strings.TrimSpace(asset)
		feed := strings.TrimSpace(priceFeeds[idx])
		if asset == "" || feed == "" {
			return nil, ErrInvalidAddress
		}

		if _, ok := r.feeds[asset]; ok {
			return nil, ErrConfigMismatch
		}

		r.feeds[asset] = feed
		r.assets = append(r.assets, SupportedAsset{Asset: asset, PriceFeed: feed})
	}

	return r, nil
}

// Assets collateral asset handles in configuration order
func (r *AssetRegistry) Assets() []string {
	assets := make([]string, len(r.assets))
	for idx, a := range r.assets {
		assets[idx] = a.Asset
	}

	return assets
}

// Pairs asset / feed pairs in configuration order
func (r *AssetRegistry) Pairs() []SupportedAsset {
	pairs := make([]SupportedAsset, len(r.assets))
	copy(pairs, r.assets)
	return pairs
}

// PriceFeed feed handle of asset
func (r *AssetRegistry) PriceFeed(asset string) (string, bool) {
	feed, ok := r.feeds[asset]
	return feed, ok
}

// IsSupported is asset allowed as collateral
func (r *AssetRegistry) IsSupported(asset string) bool {
	_, ok := r.feeds[asset]
	return ok
}

// Len number of collateral assets
func (r *AssetRegistry) Len() int {
	return len(r.assets)
}
