package metrics

import "fmt"

// DefaultMaintainability is the index assigned when a file has no complexity
// blocks or when the complexity analyzer failed.
const DefaultMaintainability = 100.0

// MaintainabilityIndex computes
//
//	171 - 5.2*lines - 0.23*volume - 16.2*avgComplexity
//
// clamped to [0, 100]. lines is the raw physical line count of the file; it is
// not log-scaled. A file with no complexity blocks scores DefaultMaintainability.
//
// The default for block-less files can hide poor module-level code (data
// files, scripts without functions); it is kept for compatibility with
// existing reports.
func MaintainabilityIndex(lines int, volume, avgComplexity float64, blocks int) float64 {
	if blocks == 0 {
		return DefaultMaintainability
	}
	mi := 171 - 5.2*float64(lines) - 0.23*volume - 16.2*avgComplexity
	return Clamp(mi, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Band is the qualitative maintainability rating of a file.
type Band int

const (
	BandFavorable Band = iota
	BandModerate
	BandUnfavorable
)

const (
	favorableThreshold = 80
	moderateThreshold  = 50
)

// BandFor rates a maintainability index: >=80 favorable, >=50 moderate,
// otherwise unfavorable.
func BandFor(mi float64) Band {
	switch {
	case mi >= favorableThreshold:
		return BandFavorable
	case mi >= moderateThreshold:
		return BandModerate
	default:
		return BandUnfavorable
	}
}

// Class is the CSS class used in HTML reports.
func (b Band) Class() string {
	switch b {
	case BandFavorable:
		return "good"
	case BandModerate:
		return "moderate"
	default:
		return "poor"
	}
}

// Color is the hex RGB color used in Word reports.
func (b Band) Color() string {
	switch b {
	case BandFavorable:
		return "008000"
	case BandModerate:
		return "FFA500"
	default:
		return "FF0000"
	}
}

// Summary is the sentence shown next to a file in reports.
func (b Band) Summary() string {
	switch b {
	case BandFavorable:
		return "The code is very maintainable."
	case BandModerate:
		return "The code has moderate maintainability."
	default:
		return "The code has low maintainability and may need refactoring."
	}
}

func (b Band) String() string {
	switch b {
	case BandFavorable:
		return "favorable"
	case BandModerate:
		return "moderate"
	case BandUnfavorable:
		return "unfavorable"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// FormatValue renders a metric value: integers without decimals, everything
// else with two decimal places.
func FormatValue(v float64, integral bool) string {
	if integral {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
