package copytrade

import "errors"

var (
	ErrTraderNotFound = errors.New("trader not found")
)

// Trader is a strategy account users can mirror
type Trader struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Performance float64 `json:"performance"` // percent return
	Trades      int     `json:"trades"`
	WinRate     float64 `json:"winRate"`
	IsFollowing bool    `json:"isFollowing"`
}

// ToggleRequest is the body of POST /copy-trade/toggle
type ToggleRequest struct {
	TraderID string `json:"traderId" validate:"required"`
}

// ToggleResponse reports the follow state after a toggle
type ToggleResponse struct {
	TraderID  string `json:"traderId"`
	Following bool   `json:"following"`
}
