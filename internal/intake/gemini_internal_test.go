// Copyright (c) 2026 Warehouse 21. All rights reserved.

package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestParseAddItem_QuantityCoercion verifies that the numeric representations
the service actually emits all coerce to an integer quantity.
*/
func TestParseAddItem_QuantityCoercion(t *testing.T) {
	for name, raw := range map[string]any{
		"float":  float64(5),
		"int":    5,
		"string": "5",
	} {
		t.Run(name, func(t *testing.T) {
			outcome, err := parseAddItem(map[string]any{
				argName:         "beans",
				argQuantity:     raw,
				argCategorySlug: "food",
				argIconType:     "can_meat.png",
			})
			require.NoError(t, err)

			call, ok := outcome.(AddItemCall)
			require.True(t, ok)
			assert.Equal(t, 5, call.Quantity)
			assert.Equal(t, "beans", call.Name)
			assert.Equal(t, "food", call.CategorySlug)
			assert.Equal(t, "can_meat.png", call.IconType)
		})
	}
}

/*
TestParseAddItem_MalformedArguments verifies rejection of unusable tool
arguments.
*/
func TestParseAddItem_MalformedArguments(t *testing.T) {
	_, err := parseAddItem(map[string]any{argQuantity: float64(5)})
	require.Error(t, err)

	_, err = parseAddItem(map[string]any{argName: "beans", argQuantity: "plenty"})
	require.Error(t, err)

	_, err = parseAddItem(map[string]any{argName: "beans", argQuantity: []any{}})
	require.Error(t, err)
}
