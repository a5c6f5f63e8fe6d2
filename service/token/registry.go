package token

import (
	"dsc/core"
)

// Registry resolves collateral tokens by asset handle
type Registry struct {
	tokens map[string]core.IToken
}

// NewRegistry new registry keyed by each token's address
func NewRegistry(tokens ...core.IToken) *Registry {
	r := &Registry{tokens: make(map[string]core.IToken, len(tokens))}
	for _, t := range tokens {
		r.tokens[t.Address()] = t
	}

	return r
}

// Token collateral token of asset
func (r *Registry) Token(asset string) (core.IToken, error) {
	t, ok := r.tokens[asset]
	if !ok {
		return nil, core.ErrUnsupportedAsset
	}

	return t, nil
}
