package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyPayload builds a series of n days ending 2024-03-31, closes rising by 1
// per day from start, newest last in the JSON object.
func dailyPayload(seriesKey, volumeKey string, n int, start float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"Meta Data":{"1. Information":"Daily Prices"},"%s":{`, seriesKey)
	day := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `"%s":{"1. open":"1.0","4. close":"%.4f"`, day.Format("2006-01-02"), start+float64(i))
		if volumeKey != "" {
			fmt.Fprintf(&b, `,"%s":"%d"`, volumeKey, 1_000_000+i)
		}
		b.WriteString("}")
		day = day.AddDate(0, 0, 1)
	}
	b.WriteString("}}")
	return b.String()
}

func TestParseDailySeries_Quote(t *testing.T) {
	series, err := parseDailySeries([]byte(dailyPayload("Time Series (Daily)", "5. volume", 30, 100)))
	require.NoError(t, err)

	q, err := series.quote("SPX")
	require.NoError(t, err)

	// newest close is 129, previous 128
	assert.Equal(t, "SPX", q.Symbol)
	assert.InDelta(t, 129.0, q.Price, 1e-9)
	assert.InDelta(t, 100.0/128.0, q.Change, 1e-9)
	assert.InDelta(t, 1_000_029.0, q.Volume, 1e-9)
	require.Len(t, q.ChartData, chartPoints)
	assert.InDelta(t, 129.0, q.ChartData[0], 1e-9)
	assert.InDelta(t, 106.0, q.ChartData[23], 1e-9)
}

func TestParseDailySeries_SixthVolumeKey(t *testing.T) {
	series, err := parseDailySeries([]byte(dailyPayload("Time Series (Daily)", "6. volume", 3, 10)))
	require.NoError(t, err)
	q, err := series.quote("BTC")
	require.NoError(t, err)
	assert.InDelta(t, 1_000_002.0, q.Volume, 1e-9)
	assert.Len(t, q.ChartData, 3)
}

func TestParseDailySeries_Errors(t *testing.T) {
	cases := map[string]string{
		"rate limit note": `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute"}`,
		"error message":   `{"Error Message":"Invalid API call."}`,
		"information":     `{"Information":"premium endpoint"}`,
		"no series":       `{"Meta Data":{}}`,
		"not json":        `<html>`,
		"bad close":       `{"Time Series (Daily)":{"2024-01-01":{"4. close":"abc"}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseDailySeries([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestDailySeries_NeedsTwoPoints(t *testing.T) {
	series, err := parseDailySeries([]byte(dailyPayload("Time Series (Daily)", "", 1, 10)))
	require.NoError(t, err)
	_, err = series.quote("X")
	assert.Error(t, err)
}

func TestAlphaVantageProvider_Quotes(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "demo-key", q.Get("apikey"))

		switch q.Get("function") {
		case "FX_DAILY":
			assert.Equal(t, "USD", q.Get("to_symbol"))
			fmt.Fprint(w, dailyPayload("Time Series FX (Daily)", "", 5, 1))
		case "TIME_SERIES_DAILY":
			assert.NotEmpty(t, q.Get("symbol"))
			fmt.Fprint(w, dailyPayload("Time Series (Daily)", "5. volume", 5, 100))
		default:
			t.Errorf("unexpected function %q", q.Get("function"))
		}
	}))
	defer srv.Close()

	p := NewAlphaVantageProvider("demo-key", srv.URL, time.Second)

	stocks, err := p.Quotes(context.Background(), Stocks)
	require.NoError(t, err)
	require.Len(t, stocks, 3)
	assert.Equal(t, []string{"SPX", "NDX", "DJI"}, []string{stocks[0].Symbol, stocks[1].Symbol, stocks[2].Symbol})
	assert.Positive(t, stocks[0].Volume)

	forex, err := p.Quotes(context.Background(), Forex)
	require.NoError(t, err)
	require.Len(t, forex, 4)
	assert.Zero(t, forex[0].Volume)

	assert.Equal(t, int32(7), calls.Load())
}

func TestAlphaVantageProvider_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewAlphaVantageProvider("k", srv.URL, time.Second)
	_, err := p.Quotes(context.Background(), Crypto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BTC")
	assert.Contains(t, err.Error(), "502")
}

func TestAlphaVantageProvider_UnknownClass(t *testing.T) {
	p := NewAlphaVantageProvider("k", "http://127.0.0.1:0", time.Second)
	_, err := p.Quotes(context.Background(), AssetClass("bonds"))
	assert.ErrorIs(t, err, ErrUnknownAssetClass)
}
