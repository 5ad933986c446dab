package numutil

import "fmt"

// Integer is any signed integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T Integer](i T) string {
	n := int64(i)
	if n < 0 {
		return "-" + uintWithCommas(uint64(-(n + 1))+1)
	}
	return uintWithCommas(uint64(n))
}

func uintWithCommas(u uint64) string {
	if u < 1000 {
		return fmt.Sprintf("%d", u)
	}
	return uintWithCommas(u/1000) + "," + fmt.Sprintf("%03d", u%1000)
}
