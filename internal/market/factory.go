package market

import (
	"spreadedge/internal/shared/config"
	"spreadedge/pkg/logger"
)

// NewProviderFromConfig picks the provider named by MARKET_PROVIDER
func NewProviderFromConfig(cfg config.MarketConfig, log *logger.Logger) Provider {
	switch cfg.Provider {
	case "alphavantage":
		if cfg.APIKey == "" {
			log.Warn("alphavantage provider selected without an API key, falling back to mock data")
			return NewMockProvider()
		}
		return NewAlphaVantageProvider(cfg.APIKey, cfg.BaseURL, cfg.RequestTimeout)
	default:
		return NewMockProvider()
	}
}
