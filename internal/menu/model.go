package menu

// Item is a single dish or drink line inside a category. Price is kept
// as decimal-formatted text exactly as the owner typed it; the backend
// stores it verbatim.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Category is a named ordered group of items. Display order is slice
// order and is preserved across edits.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Menu is the full document the owner edits and the public view renders.
// ID is assigned by the server on create; ViewCount is server-maintained
// and read-only to this client.
type Menu struct {
	ID          string
	Name        string
	Description string
	Currency    Currency
	Categories  []Category
	ViewCount   int

	// QRCode is an optional server-hosted QR image URL attached to
	// menus returned by the list endpoint.
	QRCode string
}

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	JPY Currency = "JPY"
	TRY Currency = "TRY"
)

// Currencies lists every supported currency in display order.
func Currencies() []Currency {
	return []Currency{USD, EUR, GBP, CAD, AUD, JPY, TRY}
}

func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, GBP, CAD, AUD, JPY, TRY:
		return true
	}
	return false
}

// Symbol returns the display glyph for the currency. Unknown currencies
// map to an empty prefix rather than a guess.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	case GBP:
		return "£"
	case CAD:
		return "C$"
	case AUD:
		return "A$"
	case JPY:
		return "¥"
	case TRY:
		return "₺"
	}
	return ""
}

// PriceLine renders an item price the way the public menu view shows it:
// glyph immediately followed by the stored price text.
func (c Currency) PriceLine(price string) string {
	return c.Symbol() + price
}
