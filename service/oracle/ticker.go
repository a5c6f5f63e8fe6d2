package oracle

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"dsc/core"
	"dsc/pkg/id"
	"dsc/pkg/logger"
	"dsc/pkg/resthttp"
)

// TickerService pulls feed prices from the configured price endpoint
type TickerService struct {
	endpoint string
}

// NewTickerService new ticker service
func NewTickerService(endpoint string) *TickerService {
	return &TickerService{endpoint: strings.TrimRight(endpoint, "/")}
}

// PullPriceTicker GET {endpoint}/api/v2/tickers/{feed}
func (s *TickerService) PullPriceTicker(ctx context.Context, feed string) (*core.PriceTicker, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("price oracle endpoint not configured")
	}

	u := fmt.Sprintf("%s/api/v2/tickers/%s", s.endpoint, url.PathEscape(feed))
	logger.FromContext(ctx).Debugln("pull price:", u)

	req := resthttp.Request(ctx)
	if traceID := id.TraceIDOf(ctx); traceID != "" {
		req = resthttp.WithRequestID(ctx, traceID)
	}

	resp, err := req.Get(u)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	if ticker.Feed == "" {
		ticker.Feed = feed
	}

	if !ticker.Price.IsPositive() {
		return nil, core.ErrInvalidPrice
	}

	return &ticker, nil
}
