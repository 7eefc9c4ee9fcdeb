package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spreadedge/internal/shared/constants"
	"spreadedge/pkg/cache"
	"spreadedge/pkg/logger"
	"spreadedge/pkg/metrics"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	Quotes(ctx context.Context, class AssetClass) ([]Quote, error)
	Analysis(ctx context.Context) (*Analysis, error)
}

// ServiceConfig tunes caching and upstream retries
type ServiceConfig struct {
	CacheTTL  time.Duration
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultServiceConfig returns a five minute cache and three attempts
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CacheTTL:  constants.TTL_MARKET_QUOTES,
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  4 * time.Second,
	}
}

type service struct {
	provider Provider
	cache    cache.Service
	breaker  *CircuitBreaker
	cfg      ServiceConfig
	log      *logger.Logger

	group singleflight.Group
}

func NewService(provider Provider, cacheService cache.Service, breaker *CircuitBreaker, cfg ServiceConfig, log *logger.Logger) Service {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &service{
		provider: provider,
		cache:    cacheService,
		breaker:  breaker,
		cfg:      cfg,
		log:      log,
	}
}

// Quotes serves from cache and collapses concurrent misses for a class into
// one upstream call
func (s *service) Quotes(ctx context.Context, class AssetClass) ([]Quote, error) {
	if _, err := ParseAssetClass(string(class)); err != nil {
		return nil, err
	}

	key := constants.BuildMarketQuotesKey(string(class))
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Detached so one caller going away does not fail the others
		shared := context.WithoutCancel(ctx)

		var quotes []Quote
		err := s.cache.GetOrSet(shared, key, s.cfg.CacheTTL, func(ctx context.Context) (interface{}, error) {
			return s.fetch(ctx, class)
		}, &quotes)
		return quotes, err
	})
	if err != nil {
		return nil, err
	}
	return result.([]Quote), nil
}

// Analysis loads every class concurrently
func (s *service) Analysis(ctx context.Context) (*Analysis, error) {
	results := make([][]Quote, len(AssetClasses))

	g, gctx := errgroup.WithContext(ctx)
	for i, class := range AssetClasses {
		g.Go(func() error {
			quotes, err := s.Quotes(gctx, class)
			if err != nil {
				return fmt.Errorf("%s: %w", class, err)
			}
			results[i] = quotes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Crypto: results[0],
		Forex:  results[1],
		Stocks: results[2],
	}
	analysis.All = make([]Quote, 0, len(results[0])+len(results[1])+len(results[2]))
	for _, quotes := range results {
		analysis.All = append(analysis.All, quotes...)
	}
	return analysis, nil
}

// fetch calls the provider behind the breaker with bounded exponential backoff
func (s *service) fetch(ctx context.Context, class AssetClass) ([]Quote, error) {
	if !s.breaker.Allow() {
		metrics.IncUpstream(string(class), "rejected")
		return nil, fmt.Errorf("%w: circuit open", ErrUpstreamUnavailable)
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.Attempts; attempt++ {
		if attempt > 0 {
			delay := backoff(s.cfg.BaseDelay, s.cfg.MaxDelay, attempt-1)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		quotes, err := s.provider.Quotes(ctx, class)
		s.log.LogQuoteFetch(ctx, s.provider.Name(), string(class), time.Since(start), err)
		if err == nil {
			metrics.IncUpstream(string(class), "ok")
			s.breaker.RecordSuccess()
			return quotes, nil
		}

		metrics.IncUpstream(string(class), "error")
		lastErr = err
		if errors.Is(err, ErrUnknownAssetClass) || ctx.Err() != nil {
			break
		}
	}

	s.breaker.RecordFailure()
	return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}
