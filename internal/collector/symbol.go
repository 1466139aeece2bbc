package collector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"StockForecaster/internal/model"
)

// MaxSymbolLen bounds sanitized symbols.
const MaxSymbolLen = 10

// MaxSearchResults bounds Search output.
const MaxSearchResults = 10

var (
	ErrInvalidSymbol = errors.New("invalid symbol")

	nonAlnum     = regexp.MustCompile(`[^A-Z0-9]`)
	symbolRe     = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,9}$`)
	exchangeCode = regexp.MustCompile(`^[A-Z]{4}$`)
)

// SanitizeSymbol upper-cases input, drops everything that is not a
// letter or digit and truncates to MaxSymbolLen.
func SanitizeSymbol(input string) string {
	s := nonAlnum.ReplaceAllString(strings.ToUpper(strings.TrimSpace(input)), "")
	if len(s) > MaxSymbolLen {
		s = s[:MaxSymbolLen]
	}
	return s
}

// ValidateSymbol sanitizes input and rejects anything that cannot be a ticker.
func ValidateSymbol(input string) (string, error) {
	s := SanitizeSymbol(input)
	if !symbolRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, input)
	}
	return s, nil
}

// IsExchangeCode reports whether s is a four-letter exchange listing code.
func IsExchangeCode(s string) bool {
	return exchangeCode.MatchString(s)
}

// Search matches query case-insensitively against symbol and name.
func Search(quotes []model.Quote, query string) []model.Quote {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}
	var out []model.Quote
	for _, q := range quotes {
		if strings.Contains(strings.ToLower(q.Symbol), term) ||
			strings.Contains(strings.ToLower(q.Name), term) {
			out = append(out, q)
			if len(out) == MaxSearchResults {
				break
			}
		}
	}
	return out
}
