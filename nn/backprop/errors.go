package backprop

import "github.com/pkg/errors"

// Error kinds shared by the trainer and the network. Callers match them with errors.Is
// or errors.Cause; the returned errors carry call-site context around the kind.
var (
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrMissingLayer        = errors.New("missing layer")
	ErrInvalidTopology     = errors.New("invalid topology")
	ErrInvalidLearningRate = errors.New("invalid learning rate")
)

func mismatch(op string, got, want int) error {
	return errors.Wrapf(ErrDimensionMismatch, "%s: got %d values, want %d", op, got, want)
}
