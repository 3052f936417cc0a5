// Copyright (c) 2026 Warehouse 21. All rights reserved.

// Package slug derives ASCII identifiers from arbitrary Unicode display names.
//
// # Usage
//
// Slugs are the stable keys for catalog subcategories (e.g. "myasnaya_konservatsiya"
// for "Мясная консервация"). This package handles transliteration, accent removal,
// and character sanitization. It guarantees determinism, not uniqueness — the
// catalog store owns uniqueness.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// translitTable maps lowercase Cyrillic runes to their Latin spellings.
// Runes absent from the table pass through unchanged.
var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Make converts a display name into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Lowercases the input.
//  2. Transliterates Cyrillic runes through the fixed table.
//  3. Normalizes to NFD and removes combining marks (é → e).
//  4. Collapses every maximal run of characters outside [a-z0-9] into a
//     single underscore and trims leading/trailing underscores.
//
// Make is pure and idempotent: Make(Make(s)) == Make(s). An input with no
// mappable letters or digits yields an empty slug, which callers must reject.
func Make(name string) string {
	lowered := strings.ToLower(name)

	// Transliterate before normalization: NFD would decompose й and ё into
	// base letter + combining mark and lose their table spellings.
	var translit strings.Builder
	translit.Grow(len(lowered))
	for _, r := range lowered {
		if mapped, ok := translitTable[r]; ok {
			translit.WriteString(mapped)
		} else {
			translit.WriteRune(r)
		}
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	folded, _, _ := transform.String(t, translit.String())

	var out strings.Builder
	out.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && out.Len() > 0 {
				out.WriteByte('_')
			}
			pendingSep = false
			out.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return out.String()
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
