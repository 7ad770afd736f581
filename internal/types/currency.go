package types

import "strings"

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"aud": "AU$",
	"cad": "CA$",
	"chf": "CHF",
	"sek": "kr",
	"nzd": "NZ$",
	"hkd": "HK$",
	"sgd": "S$",
	"jpy": "¥",
	"cny": "¥",
	"inr": "₹",
	"brl": "R$",
	"rub": "₽",
	"mxn": "MX$",
	"krw": "₩",
	"try": "₺",
	"zar": "R",
	"myr": "RM",
}

// zeroDecimalCurrencies have no minor unit
var zeroDecimalCurrencies = map[string]struct{}{
	"jpy": {},
	"krw": {},
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// GetCurrencyPrecision returns the number of minor-unit decimal places
// for a currency code (2 for most, 0 for e.g. JPY)
func GetCurrencyPrecision(code string) int32 {
	if _, ok := zeroDecimalCurrencies[strings.ToLower(code)]; ok {
		return 0
	}
	return 2
}
