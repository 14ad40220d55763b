package engine

import "math/rand/v2"

// Picker chooses an index in [0, n). Implementations must handle n > 0 only.
type Picker interface {
	IntN(n int) int
}

// randPicker draws from the process-wide generator.
type randPicker struct{}

func (randPicker) IntN(n int) int {
	return rand.IntN(n)
}

// FixedPicker always returns the same index, clamped to the candidate count.
type FixedPicker int

// IntN implements Picker.
func (p FixedPicker) IntN(n int) int {
	if int(p) >= n {
		return n - 1
	}
	if p < 0 {
		return 0
	}
	return int(p)
}
