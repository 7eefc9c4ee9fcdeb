package copytrade

import (
	"context"
	"fmt"

	"spreadedge/pkg/logger"
)

type Service interface {
	// Traders lists every trader. An empty subject sees nothing followed.
	Traders(ctx context.Context, subject string) ([]Trader, error)
	Toggle(ctx context.Context, subject, traderID string) (bool, error)
}

type service struct {
	roster *Roster
	store  FollowStore
	log    *logger.Logger
}

func NewService(roster *Roster, store FollowStore, log *logger.Logger) Service {
	return &service{roster: roster, store: store, log: log}
}

func (s *service) Traders(ctx context.Context, subject string) ([]Trader, error) {
	traders := s.roster.Traders()
	if subject == "" {
		return traders, nil
	}

	following, err := s.store.Following(ctx, subject)
	if err != nil {
		return nil, err
	}
	for i := range traders {
		traders[i].IsFollowing = following[traders[i].ID]
	}
	return traders, nil
}

func (s *service) Toggle(ctx context.Context, subject, traderID string) (bool, error) {
	if !s.roster.Has(traderID) {
		return false, fmt.Errorf("%w: %q", ErrTraderNotFound, traderID)
	}

	following, err := s.store.Toggle(ctx, subject, traderID)
	if err != nil {
		return false, err
	}

	s.log.LogCopyTradeToggled(ctx, subject, traderID, following)
	return following, nil
}
