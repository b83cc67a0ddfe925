package nn

import "neuron_lib/nn/backprop"

// Error kinds returned by the network; see package backprop.
var (
	ErrDimensionMismatch   = backprop.ErrDimensionMismatch
	ErrMissingLayer        = backprop.ErrMissingLayer
	ErrInvalidTopology     = backprop.ErrInvalidTopology
	ErrInvalidLearningRate = backprop.ErrInvalidLearningRate
)
