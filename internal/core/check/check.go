// Package check resolves difficulty checks: a die total against a target.
package check

// MeetsDifficulty reports whether total reaches difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}
