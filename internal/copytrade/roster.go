package copytrade

import (
	"math/rand/v2"
	"sync"
)

type profile struct {
	id, name           string
	perfLo, perfHi     float64
	tradesLo, tradesHi int
	winLo, winHi       float64
}

var profiles = []profile{
	{"1", "CryptoMaster", 15, 30, 100, 500, 0.65, 0.85},
	{"2", "ForexPro", 12, 25, 80, 400, 0.60, 0.80},
	{"3", "StockGuru", 10, 20, 50, 300, 0.70, 0.90},
	{"4", "DayTrader", 8, 18, 200, 800, 0.55, 0.75},
	{"5", "SwingKing", 20, 35, 30, 150, 0.75, 0.95},
}

// Roster produces the trader list. Statistics are drawn fresh on every call.
type Roster struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRoster() *Roster {
	return &Roster{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func NewSeededRoster(seed uint64) *Roster {
	return &Roster{rng: rand.New(rand.NewPCG(seed, seed^0x7ade))}
}

// Has reports whether id names a known trader
func (r *Roster) Has(id string) bool {
	for _, p := range profiles {
		if p.id == id {
			return true
		}
	}
	return false
}

// Traders returns every trader with IsFollowing unset
func (r *Roster) Traders() []Trader {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Trader, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Trader{
			ID:          p.id,
			Name:        p.name,
			Performance: p.perfLo + r.rng.Float64()*(p.perfHi-p.perfLo),
			Trades:      p.tradesLo + r.rng.IntN(p.tradesHi-p.tradesLo+1),
			WinRate:     p.winLo + r.rng.Float64()*(p.winHi-p.winLo),
		})
	}
	return out
}
