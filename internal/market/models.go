package market

import "errors"

type AssetClass string

const (
	Crypto AssetClass = "crypto"
	Forex  AssetClass = "forex"
	Stocks AssetClass = "stocks"
)

// AssetClasses lists every class in presentation order
var AssetClasses = []AssetClass{Crypto, Forex, Stocks}

var (
	ErrUpstreamUnavailable = errors.New("market data unavailable")
	ErrUnknownAssetClass   = errors.New("unknown asset class")
)

// ParseAssetClass accepts the lowercase route segment
func ParseAssetClass(s string) (AssetClass, error) {
	for _, class := range AssetClasses {
		if string(class) == s {
			return class, nil
		}
	}
	return "", ErrUnknownAssetClass
}

// Quote is the latest state of one instrument. ChartData holds up to 24 daily
// closes, newest first.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"` // percent versus the previous close
	Volume    float64   `json:"volume"`
	ChartData []float64 `json:"chartData"`
}

// Analysis groups quotes by class. All is the concatenation in class order.
type Analysis struct {
	Crypto []Quote `json:"crypto"`
	Forex  []Quote `json:"forex"`
	Stocks []Quote `json:"stocks"`
	All    []Quote `json:"all"`
}

// ByClass returns the quotes for one class
func (a *Analysis) ByClass(class AssetClass) []Quote {
	switch class {
	case Crypto:
		return a.Crypto
	case Forex:
		return a.Forex
	case Stocks:
		return a.Stocks
	default:
		return nil
	}
}
