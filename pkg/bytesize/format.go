// Package bytesize renders byte counts for log lines.
package bytesize

import (
	"fmt"
	"math"
)

// units are 1024-based, matching how restic reports sizes.
var units = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// Format renders n with one decimal in the largest unit that keeps the value at or above 1.
//
// Examples:
//
//	Format(512)        // "512 B"
//	Format(1536)       // "1.5 KiB"
//	Format(536870912)  // "512.0 MiB"
func Format(n int64) string {
	if n < 0 {
		return "-" + Format(-n)
	}
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	exp := int(math.Log(float64(n)) / math.Log(1024))
	if exp >= len(units) {
		exp = len(units) - 1
	}
	value := float64(n) / math.Pow(1024, float64(exp))
	// Rounding can push the value to 1024.0; move to the next unit instead.
	if value >= 1023.95 && exp < len(units)-1 {
		exp++
		value /= 1024
	}
	return fmt.Sprintf("%.1f %s", value, units[exp])
}
