package pipeline

import (
	"fmt"
	"time"
)

const hoursPerYear = 24 * 365

// AgeYears returns the file age in fractional years based on the configured
// date source (currently the last-modified timestamp).
func AgeYears(modified, now time.Time) float64 {
	if !modified.Before(now) {
		return 0
	}
	return now.Sub(modified).Hours() / hoursPerYear
}

// Expired is the retention bypass rule: a file at least retentionYears old is
// destroyed without extraction or inference. Expired records are the dominant
// volume case, so this check runs before any expensive work.
func Expired(ageYears float64, retentionYears int) bool {
	return ageYears >= float64(retentionYears)
}

// ExpiredInsight is the fixed explanation attached to bypass results.
func ExpiredInsight(retentionYears int) string {
	return fmt.Sprintf("Older than %d years - automatic destroy", retentionYears)
}
