// Package norm holds the shared cleanup pass applied to assembled records:
// empty values are swept out and single-element containers collapse to their
// element, so optional fields either carry data or are absent entirely.
package norm

// Compact recursively removes nil values, empty strings, and empty containers
// from v, and collapses any single-element slice to its sole element. Maps and
// slices are modified in place. Applying Compact twice yields the same result
// as applying it once.
func Compact(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			c := Compact(val)
			if isEmpty(c) {
				delete(x, k)
				continue
			}
			x[k] = c
		}
		if len(x) == 0 {
			return nil
		}
		return x
	case []any:
		out := x[:0]
		for _, val := range x {
			c := Compact(val)
			if isEmpty(c) {
				continue
			}
			out = append(out, c)
		}
		if len(out) == 0 {
			return nil
		}
		if len(out) == 1 {
			return out[0]
		}
		return out
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}
