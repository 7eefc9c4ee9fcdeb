package signals

import (
	"encoding/json"
	"fmt"
	"time"
)

type SignalType string

const (
	Buy  SignalType = "BUY"
	Sell SignalType = "SELL"
	Hold SignalType = "HOLD"
)

// TimestampLayout is ISO 8601 with microseconds and no zone, the format the
// signal ids have always carried
const TimestampLayout = "2006-01-02T15:04:05.000000"

// TradingSignal is one recommendation derived from a quote
type TradingSignal struct {
	ID         string     `json:"id"`
	Symbol     string     `json:"symbol"`
	SignalType SignalType `json:"signal_type"`
	Price      float64    `json:"price"`
	Timestamp  string     `json:"timestamp"`
	Confidence float64    `json:"confidence"`
}

func newSignal(symbol string, signalType SignalType, price, confidence float64, at time.Time) TradingSignal {
	ts := at.UTC().Format(TimestampLayout)
	return TradingSignal{
		ID:         fmt.Sprintf("%s_%s", symbol, ts),
		Symbol:     symbol,
		SignalType: signalType,
		Price:      price,
		Timestamp:  ts,
		Confidence: confidence,
	}
}

// PartitionKey keeps every signal for a symbol on one partition
func (s TradingSignal) PartitionKey() string {
	return s.Symbol
}

func (s TradingSignal) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}
