// Copyright (c) 2026 Warehouse 21. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warehouse21/stockroom/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_latin", "Snacks", "snacks"},
		{"spaces_to_underscore", "Canned Meat", "canned_meat"},
		{"cyrillic_transliteration", "Мясная консервация", "myasnaya_konservatsiya"},
		{"cyrillic_yo", "Ёлка", "yolka"},
		{"cyrillic_short_i", "Йогурт", "yogurt"},
		{"soft_sign_dropped", "Соль", "sol"},
		{"latin_diacritics", "Café Olé", "cafe_ole"},
		{"punctuation_runs_collapse", "Fish -- & -- Chips!!", "fish_chips"},
		{"leading_trailing_stripped", "  ...Вода...  ", "voda"},
		{"digits_kept", "Bottle 5L", "bottle_5l"},
		{"mixed_scripts", "Energy Напиток 2.0", "energy_napitok_2_0"},
		{"all_symbols_empty", "!!! *** !!!", ""},
		{"unmapped_script_empty", "日本語", ""},
		{"empty_input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.input))
		})
	}
}

// Reapplying Make to its own output must be a no-op.
func TestMake_Idempotent(t *testing.T) {
	inputs := []string{
		"Мясная консервация",
		"Canned Meat",
		"Fish -- & -- Chips!!",
		"Энергетики",
		"bottle_5l",
	}

	for _, input := range inputs {
		once := slug.Make(input)
		assert.Equal(t, once, slug.Make(once), "input %q", input)
	}
}

func TestMake_OutputAlphabet(t *testing.T) {
	inputs := []string{
		"Газировка", "Быстрое приготовление", "Овощная консервация",
		"Прочее", "Алкоголь", "Крупы",
	}

	for _, input := range inputs {
		got := slug.Make(input)
		assert.NotEmpty(t, got)
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
			assert.True(t, valid, "slug %q contains invalid rune %q", got, r)
		}
		assert.NotContains(t, got, "__")
		assert.False(t, got[0] == '_' || got[len(got)-1] == '_', "slug %q has edge underscore", got)
	}
}
