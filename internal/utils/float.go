package utils

import "fmt"

// ToFloat64 converts various numeric types to float64.
// Returns the converted value and true if successful, or 0 and false if conversion fails.
func ToFloat64(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// ToFloat64Slice converts a slice of interface{} to a slice of float64. It fails on
// the first non-numeric element, reporting its 1-based position.
func ToFloat64Slice(values []interface{}) ([]float64, error) {
	result := make([]float64, len(values))
	for i, v := range values {
		f, ok := ToFloat64(v)
		if !ok {
			return nil, fmt.Errorf("value at position %d is not a number", i+1)
		}
		result[i] = f
	}
	return result, nil
}

// FormatFloats renders values as a comma-separated list using the shortest
// representation that round-trips
func FormatFloats(values []float64) string {
	buf := make([]byte, 0, len(values)*8)
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "%v", v)
	}
	return string(buf)
}
