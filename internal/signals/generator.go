package signals

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"spreadedge/internal/market"
)

const (
	maxConfidence = 0.95

	forexChangeThreshold = 0.5
	stockChangeThreshold = 0.3
	stockVolumeUnit      = 1_000_000
)

// Generator turns an Analysis into signals. Crypto signals are drawn at
// random; forex and stock signals fire only past a move or volume threshold.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
}

// NewSeededGenerator returns a deterministic generator for tests and demos
func NewSeededGenerator(seed uint64, now func() time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x5eed)),
		now: now,
	}
}

// Generate emits signals in class order: crypto, forex, stocks.
func (g *Generator) Generate(analysis *market.Analysis) []TradingSignal {
	if analysis == nil {
		return []TradingSignal{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	at := g.now()
	out := make([]TradingSignal, 0, len(analysis.All))

	for _, q := range analysis.Crypto {
		signalType := []SignalType{Buy, Sell, Hold}[g.rng.IntN(3)]
		confidence := 0.6 + g.rng.Float64()*(maxConfidence-0.6)
		out = append(out, newSignal(q.Symbol, signalType, q.Price, confidence, at))
	}

	for _, q := range analysis.Forex {
		if math.Abs(q.Change) <= forexChangeThreshold {
			continue
		}
		confidence := math.Min(0.7+math.Abs(q.Change)/2, maxConfidence)
		out = append(out, newSignal(q.Symbol, direction(q.Change), q.Price, confidence, at))
	}

	for _, q := range analysis.Stocks {
		volume := q.Volume / stockVolumeUnit
		if volume <= 1 || math.Abs(q.Change) <= stockChangeThreshold {
			continue
		}
		confidence := math.Min(0.75+volume*0.1, maxConfidence)
		out = append(out, newSignal(q.Symbol, direction(q.Change), q.Price, confidence, at))
	}

	return out
}

func direction(change float64) SignalType {
	if change > 0 {
		return Buy
	}
	return Sell
}
