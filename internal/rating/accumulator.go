// Package rating holds the running-average arithmetic shared by product
// and store ratings.
package rating

import (
	"fmt"

	"product-store/internal/models"
)

// Rating bounds. Submissions outside this range are rejected before any
// database write.
const (
	Min = 0.0
	Max = 5.0
)

// Accumulator is the running mean of all ratings received so far plus
// the number of contributing observations.
type Accumulator struct {
	Average float64
	Count   int64
}

// Add folds one rating into the accumulator and returns the new state.
// The receiver is not modified.
func (a Accumulator) Add(r float64) Accumulator {
	return Accumulator{
		Average: (a.Average*float64(a.Count) + r) / float64(a.Count+1),
		Count:   a.Count + 1,
	}
}

// Bootstrap is the accumulator state of an entity created by its first
// rating.
func Bootstrap(r float64) Accumulator {
	return Accumulator{Average: r, Count: 1}
}

// Validate rejects ratings outside [Min, Max].
func Validate(r float64) error {
	if r < Min || r > Max {
		return fmt.Errorf("%w: rating %.2f outside [%.0f, %.0f]", models.ErrValidation, r, Min, Max)
	}
	return nil
}
