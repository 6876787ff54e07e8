package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrencySymbol is the Pakistani rupee sign used by the sample account.
const DefaultCurrencySymbol = "₨"

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders amount with thousands grouping and at most three
// fraction digits, prefixed by symbol: FormatAmount("₨", 2000) == "₨2,000".
func FormatAmount(symbol string, amount float64) string {
	return symbol + amountPrinter.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(3)))
}
