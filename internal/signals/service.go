package signals

import (
	"context"
	"sync"
	"time"

	"spreadedge/internal/market"
	"spreadedge/pkg/logger"
)

type Service interface {
	// Signals never fails. A market outage yields an empty list.
	Signals(ctx context.Context) []TradingSignal
	Close() error
}

type service struct {
	market    market.Service
	generator *Generator
	publisher Publisher
	log       *logger.Logger

	inflight sync.WaitGroup
}

func NewService(marketService market.Service, generator *Generator, publisher Publisher, log *logger.Logger) Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &service{
		market:    marketService,
		generator: generator,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) Signals(ctx context.Context) []TradingSignal {
	start := time.Now()

	analysis, err := s.market.Analysis(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Error generating trading signals", "error", err)
		return []TradingSignal{}
	}

	batch := s.generator.Generate(analysis)
	s.log.LogSignalsGenerated(ctx, len(batch), time.Since(start))

	if len(batch) > 0 {
		s.publish(context.WithoutCancel(ctx), batch)
	}
	return batch
}

// publish runs off the request path; the response never waits on the broker
func (s *service) publish(ctx context.Context, batch []TradingSignal) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.publisher.Publish(ctx, batch); err != nil {
			s.log.WarnContext(ctx, "Failed to publish trading signals", "count", len(batch), "error", err)
		}
	}()
}

// Close waits for pending publishes and closes the publisher
func (s *service) Close() error {
	s.inflight.Wait()
	return s.publisher.Close()
}
