package quiz

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strategy selects how question pairs are built for a lesson.
type Strategy int

const (
	StrategyMixedCategory Strategy = iota
	StrategySameCategory
	StrategyHybrid
)

func (s Strategy) String() string {
	switch s {
	case StrategySameCategory:
		return "same_category"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "mixed_category"
	}
}

var contentTypeTags = map[string]Strategy{
	"combinadas": StrategyMixedCategory,
	"combinado":  StrategyMixedCategory,
	"combinada":  StrategyMixedCategory,

	"enlace de categorias": StrategySameCategory,
	"enlace de categoria":  StrategySameCategory,
	"enlace_categoria":     StrategySameCategory,
	"enlace categoria":     StrategySameCategory,
	"misma_categoria":      StrategySameCategory,
	"misma categoria":      StrategySameCategory,

	"mixto": StrategyHybrid,
}

// NormalizeContentType lowercases the tag, trims it and strips diacritics.
func NormalizeContentType(contentType string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, contentType)
	if err != nil {
		stripped = contentType
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}

// ResolveStrategy maps a lesson content_type to a strategy. The boolean is
// false when the tag is unknown and the mixed-category default was used.
func ResolveStrategy(contentType string) (Strategy, bool) {
	strategy, ok := contentTypeTags[NormalizeContentType(contentType)]
	if !ok {
		return StrategyMixedCategory, false
	}
	return strategy, true
}
