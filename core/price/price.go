package price

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// CorrectionFactor is how far above the reference mean a price must be
	// before it is treated as a cents value.
	CorrectionFactor = 50
	// CorrectionFloor is the minimum price eligible for unit correction.
	CorrectionFloor = 10
	// MaxReferences is the number of reference prices averaged.
	MaxReferences = 3
)

// Rates holds the conversion rates into EUR.
type Rates struct {
	USDToEUR float64 `json:"usd_to_eur"`
	GBPToEUR float64 `json:"gbp_to_eur"`
	ETHToEUR float64 `json:"eth_to_eur"`
}

// Amounts is a marketplace amount as returned by the API.
// Every field is optional.
type Amounts struct {
	EurCents          *int64  `json:"eurCents"`
	UsdCents          *int64  `json:"usdCents"`
	GbpCents          *int64  `json:"gbpCents"`
	Wei               *string `json:"wei"`
	ReferenceCurrency string  `json:"referenceCurrency"`
}

// ToEUR converts amounts into euros using the reference currency.
// The second return value is false when the amount is absent or malformed.
func ToEUR(amounts *Amounts, rates Rates) (float64, bool) {
	if amounts == nil {
		return 0, false
	}

	switch strings.ToLower(amounts.ReferenceCurrency) {
	case "eur":
		return cents(amounts.EurCents, 1)
	case "usd":
		return cents(amounts.UsdCents, rates.USDToEUR)
	case "gbp":
		return cents(amounts.GbpCents, rates.GBPToEUR)
	case "eth", "wei":
		if amounts.Wei == nil {
			return 0, false
		}
		wei, err := decimal.NewFromString(strings.TrimSpace(*amounts.Wei))
		if err != nil {
			return 0, false
		}
		eth := wei.Shift(-18)
		return eth.Mul(decimal.NewFromFloat(rates.ETHToEUR)).InexactFloat64(), true
	}

	// Unknown reference currency: fall back to the euro amount when present.
	return cents(amounts.EurCents, 1)
}

func cents(v *int64, rate float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return decimal.NewFromInt(*v).Shift(-2).Mul(decimal.NewFromFloat(rate)).InexactFloat64(), true
}

// ParsePrice extracts a number from free text such as "1.234,56 €" or
// "$1,234.56". It returns false when no number can be read.
func ParsePrice(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Reference returns the mean of the first MaxReferences positive prices and
// false when there are none.
func Reference(prices []float64) (float64, bool) {
	var (
		sum   float64
		count int
	)
	for _, p := range prices {
		if p <= 0 {
			continue
		}
		sum += p
		count++
		if count == MaxReferences {
			break
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// CorrectUnit divides price by 100 when it looks like a cents value compared
// to the reference prices. refs are most recent first.
//
// A price is only corrected when the corrected value would itself pass the
// check, so applying CorrectUnit twice never divides twice. A price still
// implausible after division is left unchanged: 1,000,000 against a mean of
// 10 is not corrected. Uncorrectable reports such prices.
func CorrectUnit(price float64, refs []float64) (float64, bool) {
	mean, ok := Reference(refs)
	if !ok {
		return price, false
	}
	if !implausible(price, mean) {
		return price, false
	}
	corrected := price / 100
	if implausible(corrected, mean) {
		return price, false
	}
	return Round(corrected), true
}

// Uncorrectable reports whether price looks like a cents value compared to
// refs but CorrectUnit would leave it unchanged.
func Uncorrectable(price float64, refs []float64) bool {
	mean, ok := Reference(refs)
	if !ok || !implausible(price, mean) {
		return false
	}
	return implausible(price/100, mean)
}

func implausible(price, mean float64) bool {
	return price > mean*CorrectionFactor && price > CorrectionFloor
}

// Round rounds to two decimals.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatEUR renders v as "12.34 EUR".
func FormatEUR(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " EUR"
}

// Format renders v with two decimals and no unit.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
