package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestToEUR(t *testing.T) {
	rates := Rates{USDToEUR: 0.9, GBPToEUR: 1.2, ETHToEUR: 3000}

	tests := []struct {
		name    string
		amounts *Amounts
		want    float64
		wantOK  bool
	}{
		{"Nil", nil, 0, false},
		{"Euro Cents", &Amounts{EurCents: int64Ptr(100), ReferenceCurrency: "EUR"}, 1.0, true},
		{"Euro Zero", &Amounts{EurCents: int64Ptr(0), ReferenceCurrency: "eur"}, 0, true},
		{"Euro Missing", &Amounts{ReferenceCurrency: "eur"}, 0, false},
		{"Dollar", &Amounts{UsdCents: int64Ptr(1000), ReferenceCurrency: "usd"}, 9.0, true},
		{"Pound", &Amounts{GbpCents: int64Ptr(250), ReferenceCurrency: "gbp"}, 3.0, true},
		{"Wei", &Amounts{Wei: strPtr("2000000000000000"), ReferenceCurrency: "eth"}, 6.0, true},
		{"Wei Malformed", &Amounts{Wei: strPtr("abc"), ReferenceCurrency: "eth"}, 0, false},
		{"Unknown Falls Back To Euro", &Amounts{EurCents: int64Ptr(550), ReferenceCurrency: "jpy"}, 5.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToEUR(tt.amounts, rates)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"12,5", 12.5, true},
		{"12.5 EUR", 12.5, true},
		{"€ 7", 7, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCorrectUnit(t *testing.T) {
	t.Run("Cents Value Is Divided", func(t *testing.T) {
		got, corrected := CorrectUnit(15000, []float64{120, 120, 120})
		assert.True(t, corrected)
		assert.Equal(t, 150.0, got)
	})

	t.Run("Plausible Value Untouched", func(t *testing.T) {
		got, corrected := CorrectUnit(130, []float64{120})
		assert.False(t, corrected)
		assert.Equal(t, 130.0, got)
	})

	t.Run("Below Floor Untouched", func(t *testing.T) {
		got, corrected := CorrectUnit(9, []float64{0.05})
		assert.False(t, corrected)
		assert.Equal(t, 9.0, got)
	})

	t.Run("No Reference", func(t *testing.T) {
		got, corrected := CorrectUnit(15000, []float64{0, -1})
		assert.False(t, corrected)
		assert.Equal(t, 15000.0, got)
	})

	t.Run("Only First Three References", func(t *testing.T) {
		// mean of 100, 100, 100 = 100; the 100000 outlier is ignored
		got, corrected := CorrectUnit(10000, []float64{100, 100, 100, 100000})
		assert.True(t, corrected)
		assert.Equal(t, 100.0, got)
	})

	t.Run("Uncorrectable Left Unchanged", func(t *testing.T) {
		got, corrected := CorrectUnit(1_000_000, []float64{10})
		assert.False(t, corrected)
		assert.Equal(t, 1_000_000.0, got)
		assert.True(t, Uncorrectable(1_000_000, []float64{10}))
		assert.False(t, Uncorrectable(15000, []float64{120}))
		assert.False(t, Uncorrectable(130, []float64{120}))
		assert.False(t, Uncorrectable(1_000_000, nil))
	})

	t.Run("Idempotent", func(t *testing.T) {
		refs := []float64{1, 1, 1}
		once, _ := CorrectUnit(1_000_000, refs)
		twice, correctedAgain := CorrectUnit(once, refs)
		assert.Equal(t, once, twice)
		assert.False(t, correctedAgain)
	})
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "150.00 EUR", FormatEUR(150))
	assert.Equal(t, "3.33 EUR", FormatEUR(10.0/3))
	assert.Equal(t, "0.50", Format(0.5))
}
