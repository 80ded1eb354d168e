package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	t.Run("Strips empty values", func(t *testing.T) {
		in := map[string]any{
			"keep":     "value",
			"nil":      nil,
			"empty":    "",
			"emptyMap": map[string]any{},
			"emptySl":  []any{},
			"zero":     0,
			"false":    false,
		}
		out := Compact(in)
		assert.Equal(t, map[string]any{
			"keep":  "value",
			"zero":  0,
			"false": false,
		}, out)
	})

	t.Run("Collapses singleton slices", func(t *testing.T) {
		assert.Equal(t, "only", Compact([]any{"only"}))
		assert.Equal(t, []any{"a", "b"}, Compact([]any{"a", "b"}))
	})

	t.Run("Recurses into nested structures", func(t *testing.T) {
		in := map[string]any{
			"definition": map[string]any{
				"val":   "a process",
				"xrefs": []any{"GOC:mtg"},
				"blank": "",
			},
			"dead": map[string]any{"inner": nil},
		}
		out := Compact(in)
		assert.Equal(t, map[string]any{
			"definition": map[string]any{
				"val":   "a process",
				"xrefs": "GOC:mtg",
			},
		}, out)
	})

	t.Run("Empty container collapses to nil", func(t *testing.T) {
		assert.Nil(t, Compact(map[string]any{"a": nil}))
		assert.Nil(t, Compact([]any{"", nil}))
	})

	t.Run("Idempotent", func(t *testing.T) {
		in := map[string]any{
			"ids":  []any{"1"},
			"meta": map[string]any{"xrefs": []any{"x", ""}},
		}
		once := Compact(in)
		twice := Compact(once)
		assert.Equal(t, map[string]any{"ids": "1", "meta": map[string]any{"xrefs": "x"}}, twice)
		assert.Equal(t, once, twice)
	})
}
