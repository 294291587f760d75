package password

import (
	"regexp"
)

// Strength is a coarse, advisory quality rating for a password. It never
// blocks generation or acceptance.
type Strength int

const (
	VeryWeak Strength = iota
	Weak
	Fair
	Good
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case VeryWeak:
		return "very_weak"
	case Weak:
		return "weak"
	case Fair:
		return "fair"
	case Good:
		return "good"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very_strong"
	default:
		return "unknown"
	}
}

// Score rates a password from independent checks, each worth one point:
// three length tiers, presence of each character class, no three identical
// characters in a row, and no three consecutive code points in a row.
func Score(password string) Strength {
	score := 0

	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if len(password) >= 16 {
		score++
	}

	if regexp.MustCompile(`[A-Z]`).MatchString(password) {
		score++
	}
	if regexp.MustCompile(`[a-z]`).MatchString(password) {
		score++
	}
	if regexp.MustCompile(`[0-9]`).MatchString(password) {
		score++
	}
	if regexp.MustCompile(`[^a-zA-Z0-9]`).MatchString(password) {
		score++
	}

	if !hasRepeatedRun(password) {
		score++
	}
	if !hasAscendingRun(password) {
		score++
	}

	switch {
	case score <= 2:
		return VeryWeak
	case score == 3:
		return Weak
	case score == 4:
		return Fair
	case score == 5:
		return Good
	case score == 6:
		return Strong
	default:
		return VeryStrong
	}
}

// hasRepeatedRun reports whether three identical characters appear in a row
func hasRepeatedRun(password string) bool {
	runes := []rune(password)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

// hasAscendingRun reports whether three consecutive code points appear in a
// row, e.g. "abc" or "123"
func hasAscendingRun(password string) bool {
	runes := []rune(password)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i+1] == runes[i]+1 && runes[i+2] == runes[i]+2 {
			return true
		}
	}
	return false
}
