package dataset

import (
	"strings"
	"time"
)

// CleanCategory turns a raw category name into its human-readable form:
// separators become spaces and each word is title-cased. Empty or unmapped
// categories stay empty.
func CleanCategory(raw string) string {
	if raw == "" {
		return ""
	}

	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// DeliveryDays derives the whole-day delivery duration from the purchase
// and delivered-customer timestamps. Returns nil unless both are present.
func DeliveryDays(purchase, delivered time.Time) *int {
	if purchase.IsZero() || delivered.IsZero() {
		return nil
	}
	days := int(delivered.Sub(purchase).Hours() / 24)
	return &days
}
