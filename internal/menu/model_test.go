package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencySymbol(t *testing.T) {
	// The mapping must be total over the supported set, with exactly the
	// documented glyph and nothing else.
	want := map[Currency]string{
		USD: "$",
		EUR: "€",
		GBP: "£",
		CAD: "C$",
		AUD: "A$",
		JPY: "¥",
		TRY: "₺",
	}

	for _, c := range Currencies() {
		glyph, ok := want[c]
		assert.True(t, ok, "currency %s missing from expectations", c)
		assert.Equal(t, glyph, c.Symbol())
		assert.True(t, c.Valid())
	}
	assert.Len(t, Currencies(), len(want))
}

func TestCurrencyUnknown(t *testing.T) {
	c := Currency("ZŁOTY")
	assert.False(t, c.Valid())
	assert.Equal(t, "", c.Symbol())
}

func TestPriceLine(t *testing.T) {
	assert.Equal(t, "$4.50", USD.PriceLine("4.50"))
	assert.Equal(t, "C$12.00", CAD.PriceLine("12.00"))
	assert.Equal(t, "₺80", TRY.PriceLine("80"))
}
