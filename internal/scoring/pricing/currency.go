package pricing

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"INR": "₹",
}

var printer = message.NewPrinter(language.English)

// CurrencySymbol returns the display symbol for an ISO code. Unknown codes render
// as the code followed by a space.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	if code == "" {
		return currencySymbols["USD"]
	}
	return code + " "
}

// FormatAmount renders a whole-unit amount with its currency symbol, e.g. "$1,250".
func FormatAmount(code string, amount int) string {
	return CurrencySymbol(code) + groupDigits(amount)
}

func groupDigits(n int) string {
	return printer.Sprintf("%d", n)
}
