package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const alphaVantageDefaultURL = "https://www.alphavantage.co/query"

type alphaVantageSymbol struct {
	display string
	// symbol for TIME_SERIES_DAILY, or from/to currencies for FX_DAILY
	symbol   string
	from, to string
}

var alphaVantageSymbols = map[AssetClass][]alphaVantageSymbol{
	Crypto: {
		{display: "BTC", symbol: "BTCUSD"},
		{display: "ETH", symbol: "ETHUSD"},
		{display: "BNB", symbol: "BNBUSD"},
		{display: "ADA", symbol: "ADAUSD"},
		{display: "DOGE", symbol: "DOGEUSD"},
	},
	Forex: {
		{display: "EURUSD", from: "EUR", to: "USD"},
		{display: "GBPUSD", from: "GBP", to: "USD"},
		{display: "JPYUSD", from: "JPY", to: "USD"},
		{display: "AUDUSD", from: "AUD", to: "USD"},
	},
	Stocks: {
		{display: "SPX", symbol: "SPY"},
		{display: "NDX", symbol: "QQQ"},
		{display: "DJI", symbol: "DIA"},
	},
}

// AlphaVantageProvider reads daily series from the Alpha Vantage REST API
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageProvider(apiKey, baseURL string, timeout time.Duration) *AlphaVantageProvider {
	if baseURL == "" {
		baseURL = alphaVantageDefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AlphaVantageProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

// Quotes fetches every instrument of the class in turn. The free tier allows a
// handful of calls per minute so requests are not fanned out.
func (p *AlphaVantageProvider) Quotes(ctx context.Context, class AssetClass) ([]Quote, error) {
	symbols, ok := alphaVantageSymbols[class]
	if !ok {
		return nil, ErrUnknownAssetClass
	}

	quotes := make([]Quote, 0, len(symbols))
	for _, s := range symbols {
		q, err := p.quote(ctx, class, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.display, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (p *AlphaVantageProvider) quote(ctx context.Context, class AssetClass, s alphaVantageSymbol) (Quote, error) {
	params := url.Values{"apikey": {p.apiKey}}
	if class == Forex {
		params.Set("function", "FX_DAILY")
		params.Set("from_symbol", s.from)
		params.Set("to_symbol", s.to)
	} else {
		params.Set("function", "TIME_SERIES_DAILY")
		params.Set("symbol", s.symbol)
	}

	body, err := p.get(ctx, params)
	if err != nil {
		return Quote{}, err
	}

	series, err := parseDailySeries(body)
	if err != nil {
		return Quote{}, err
	}
	q, err := series.quote(s.display)
	if err != nil {
		return Quote{}, err
	}
	if class == Forex {
		q.Volume = 0
	}
	return q, nil
}

func (p *AlphaVantageProvider) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

type dailyBar struct {
	date   string
	close  decimal.Decimal
	volume decimal.Decimal
}

type dailySeries []dailyBar // newest first

// parseDailySeries understands TIME_SERIES_DAILY and FX_DAILY payloads and the
// error envelopes Alpha Vantage returns with status 200.
func parseDailySeries(body []byte) (dailySeries, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for _, key := range []string{"Error Message", "Note", "Information"} {
		if msg, ok := raw[key]; ok {
			var text string
			_ = json.Unmarshal(msg, &text)
			return nil, fmt.Errorf("alpha vantage: %s", text)
		}
	}

	var points map[string]map[string]string
	for key, value := range raw {
		if strings.HasPrefix(key, "Time Series") {
			if err := json.Unmarshal(value, &points); err != nil {
				return nil, fmt.Errorf("decode series: %w", err)
			}
			break
		}
	}
	if len(points) == 0 {
		return nil, errors.New("alpha vantage: response has no time series")
	}

	series := make(dailySeries, 0, len(points))
	for date, fields := range points {
		closeValue, err := decimal.NewFromString(fields["4. close"])
		if err != nil {
			return nil, fmt.Errorf("close on %s: %w", date, err)
		}
		bar := dailyBar{date: date, close: closeValue}

		for _, key := range []string{"5. volume", "6. volume"} {
			if v, ok := fields[key]; ok {
				if bar.volume, err = decimal.NewFromString(v); err != nil {
					return nil, fmt.Errorf("volume on %s: %w", date, err)
				}
				break
			}
		}
		series = append(series, bar)
	}

	// ISO dates sort lexically
	sort.Slice(series, func(i, j int) bool { return series[i].date > series[j].date })
	return series, nil
}

func (s dailySeries) quote(symbol string) (Quote, error) {
	if len(s) < 2 {
		return Quote{}, errors.New("alpha vantage: need at least two daily closes")
	}
	latest, prev := s[0], s[1]
	if prev.close.IsZero() {
		return Quote{}, errors.New("alpha vantage: previous close is zero")
	}

	change := latest.close.Sub(prev.close).Div(prev.close).Mul(decimal.NewFromInt(100))

	n := min(len(s), chartPoints)
	chart := make([]float64, n)
	for i := range chart {
		chart[i] = s[i].close.InexactFloat64()
	}

	return Quote{
		Symbol:    symbol,
		Price:     latest.close.InexactFloat64(),
		Change:    change.InexactFloat64(),
		Volume:    latest.volume.InexactFloat64(),
		ChartData: chart,
	}, nil
}
