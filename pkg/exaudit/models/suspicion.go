package models

import "fmt"

// SuspicionLevel classifies a size-adjusted entropy score.
type SuspicionLevel int

const (
	SuspicionNone SuspicionLevel = iota
	SuspicionLow
	SuspicionMedium
	SuspicionHigh
)

// Lower bounds (exclusive) of each level.
const (
	HighSuspicionScore   = 16.0
	MediumSuspicionScore = 9.0
	LowSuspicionScore    = 7.0
)

// ClassifySuspicion maps a size-adjusted score to a level. Boundaries are
// exclusive on the lower side: exactly 16 is Medium, 9 is Low, 7 is None.
func ClassifySuspicion(score float64) SuspicionLevel {
	switch {
	case score > HighSuspicionScore:
		return SuspicionHigh
	case score > MediumSuspicionScore:
		return SuspicionMedium
	case score > LowSuspicionScore:
		return SuspicionLow
	default:
		return SuspicionNone
	}
}

// String returns the lower-case level name.
func (l SuspicionLevel) String() string {
	switch l {
	case SuspicionNone:
		return "none"
	case SuspicionLow:
		return "low"
	case SuspicionMedium:
		return "medium"
	case SuspicionHigh:
		return "high"
	default:
		return fmt.Sprintf("SuspicionLevel(%d)", int(l))
	}
}

// MarshalText encodes the level by name.
func (l SuspicionLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
