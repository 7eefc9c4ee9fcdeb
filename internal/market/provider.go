package market

import (
	"context"
	"math/rand/v2"
	"sync"
)

// Provider loads fresh quotes for one asset class
type Provider interface {
	Name() string
	Quotes(ctx context.Context, class AssetClass) ([]Quote, error)
}

const chartPoints = 24

type mockInstrument struct {
	symbol               string
	base, spread         float64
	maxChange            float64
	minVolume, maxVolume float64
}

var mockInstruments = map[AssetClass][]mockInstrument{
	Crypto: {
		{symbol: "BTC", base: 50000, spread: 1000, maxChange: 5, minVolume: 1_000_000, maxVolume: 5_000_000},
		{symbol: "ETH", base: 3000, spread: 100, maxChange: 5, minVolume: 500_000, maxVolume: 2_000_000},
	},
	Forex: {
		{symbol: "EURUSD", base: 1.08, spread: 0.01, maxChange: 1},
		{symbol: "GBPUSD", base: 1.25, spread: 0.01, maxChange: 1},
	},
	Stocks: {
		{symbol: "SPX", base: 5000, spread: 50, maxChange: 2, minVolume: 1_000_000, maxVolume: 3_000_000},
		{symbol: "NDX", base: 17000, spread: 100, maxChange: 2, minVolume: 500_000, maxVolume: 1_500_000},
	},
}

// MockProvider produces randomised quotes around fixed reference prices. It
// serves development setups without an Alpha Vantage key.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockProvider() *MockProvider {
	return &MockProvider{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededMockProvider returns a deterministic provider
func NewSeededMockProvider(seed uint64) *MockProvider {
	return &MockProvider{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Quotes(_ context.Context, class AssetClass) ([]Quote, error) {
	instruments, ok := mockInstruments[class]
	if !ok {
		return nil, ErrUnknownAssetClass
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	quotes := make([]Quote, 0, len(instruments))
	for _, in := range instruments {
		chart := make([]float64, chartPoints)
		for i := range chart {
			chart[i] = in.base + p.uniform(-in.spread, in.spread)
		}
		var volume float64
		if in.maxVolume > 0 {
			volume = p.uniform(in.minVolume, in.maxVolume)
		}
		quotes = append(quotes, Quote{
			Symbol:    in.symbol,
			Price:     in.base + p.uniform(-in.spread, in.spread),
			Change:    p.uniform(-in.maxChange, in.maxChange),
			Volume:    volume,
			ChartData: chart,
		})
	}
	return quotes, nil
}

func (p *MockProvider) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}
