package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange reports a symbol range whose low bound exceeds its high
	// bound, or whose bounds fall outside the alphabet.
	ErrInvalidRange = errors.New("invalid symbol range")

	// ErrInvalidRepetition reports a bounded repetition where min > max.
	ErrInvalidRepetition = errors.New("invalid repetition bounds")
)

// StateLimitExceededError is returned when subset construction needs more
// effort than the caller-imposed work limit allows. The work-in-progress
// automaton is discarded; the only recovery is a simpler input or a higher
// limit.
type StateLimitExceededError struct {
	Limit int
}

func (e *StateLimitExceededError) Error() string {
	return fmt.Sprintf("state limit exceeded: determinizing requires more than %d effort", e.Limit)
}
