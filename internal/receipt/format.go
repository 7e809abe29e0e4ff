package receipt

import "fmt"

// Currency is an ISO-ish currency code supported by the application.
type Currency string

const (
	// PHP is the Philippine peso, the default currency.
	PHP Currency = "PHP"
	// USD is the United States dollar.
	USD Currency = "USD"
)

// Symbol returns the display symbol for the currency. Unknown codes fall
// back to the peso sign.
func (c Currency) Symbol() string {
	if c == USD {
		return "$"
	}
	return "₱"
}

// Valid reports whether the currency code is supported.
func (c Currency) Valid() bool {
	return c == PHP || c == USD
}

// FormatAmount renders an amount with the currency symbol and a fixed two
// decimal places. Formatting is a display concern layered on top of the
// calculator's numeric contract.
func FormatAmount(amount float64, currency Currency) string {
	return fmt.Sprintf("%s%.2f", currency.Symbol(), amount)
}
