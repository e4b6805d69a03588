package quiz

import "testing"

func TestResolveStrategy(t *testing.T) {
	cases := []struct {
		contentType string
		want        Strategy
		known       bool
	}{
		{"combinadas", StrategyMixedCategory, true},
		{"Combinado", StrategyMixedCategory, true},
		{"  COMBINADA ", StrategyMixedCategory, true},
		{"Enlace de Categorías", StrategySameCategory, true},
		{"enlace de categoria", StrategySameCategory, true},
		{"enlace_categoria", StrategySameCategory, true},
		{"enlace categoría", StrategySameCategory, true},
		{"misma_categoria", StrategySameCategory, true},
		{"Misma Categoría", StrategySameCategory, true},
		{"mixto", StrategyHybrid, true},
		{"Mixtó", StrategyHybrid, true},
		{"vocabulario", StrategyMixedCategory, false},
		{"", StrategyMixedCategory, false},
	}

	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			got, known := ResolveStrategy(tc.contentType)
			if got != tc.want || known != tc.known {
				t.Errorf("ResolveStrategy(%q) = %v,%v want %v,%v", tc.contentType, got, known, tc.want, tc.known)
			}
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	if got := NormalizeContentType("ÁÉÍÓÚ Ñ"); got != "aeiou n" {
		t.Errorf("unexpected normalization %q", got)
	}
}
