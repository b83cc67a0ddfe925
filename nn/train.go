package nn

import (
	"github.com/pkg/errors"

	"neuron_lib/nn/backprop"
)

// DefaultLearningRate is used when TrainOptions.LearningRate is zero.
const DefaultLearningRate = 0.7

// TrainOptions tunes a single training step.
type TrainOptions struct {
	// LearningRate scales every update. Must be in (0, 1]; zero means DefaultLearningRate.
	LearningRate float64
	// FreezeFirstHidden leaves the weights and biases of layer 1 untouched
	// when layer 1 is a hidden layer.
	FreezeFirstHidden bool
}

type layerUpdate struct {
	layer     int
	gradients []float64
	weights   [][]float64
}

// Train runs one online backpropagation step on a single example and returns the
// mean squared error of the output before the update. No weight or bias is
// written unless every dimension check passes.
func (net *Network) Train(input, target []float64, opts TrainOptions) (float64, error) {
	lr := opts.LearningRate
	if lr == 0 {
		lr = DefaultLearningRate
	}
	if !(lr > 0 && lr <= 1) {
		return 0, errors.Wrapf(ErrInvalidLearningRate, "%v not in (0, 1]", lr)
	}

	acts, err := net.forward(input)
	if err != nil {
		return 0, errors.Wrap(err, "Train: forward pass")
	}
	outputs := acts[len(acts)-1]
	errs, err := backprop.ComputeError(outputs, target)
	if err != nil {
		return 0, errors.Wrap(err, "Train")
	}
	loss := meanSquare(errs)

	stop := 1
	if opts.FreezeFirstHidden && len(net.layers) > 2 {
		stop = 2
	}

	var updates []layerUpdate
	for l := len(net.layers) - 1; l >= stop; l-- {
		u, prevErrs, err := net.planLayer(l, acts, errs, lr)
		if err != nil {
			return 0, errors.Wrapf(err, "Train: layer %d", l)
		}
		updates = append(updates, u)
		errs = prevErrs
	}

	for _, u := range updates {
		for i, n := range net.layers[u.layer] {
			n.weights = u.weights[i]
			n.bias += u.gradients[i]
		}
	}
	return loss, nil
}

// planLayer computes the new weights of layer l and the error signal of layer l-1,
// reading only pre-update weights.
func (net *Network) planLayer(l int, acts [][]float64, errs []float64, lr float64) (layerUpdate, []float64, error) {
	neurons := net.layers[l]
	current := layerWeights(neurons)

	gradients, err := backprop.ComputeGradients(acts[l], errs, lr)
	if err != nil {
		return layerUpdate{}, nil, err
	}
	signal, err := backprop.ComputeGradients(acts[l], errs, 1)
	if err != nil {
		return layerUpdate{}, nil, err
	}
	deltas, err := backprop.ComputeDeltas(signal, current)
	if err != nil {
		return layerUpdate{}, nil, err
	}
	prevErrs, err := backprop.Backpropagate(deltas, len(acts[l-1]))
	if err != nil {
		return layerUpdate{}, nil, err
	}

	weights := make([][]float64, len(neurons))
	for i, w := range current {
		for j := range w {
			w[j] += gradients[i] * acts[l-1][j]
		}
		weights[i] = w
	}
	return layerUpdate{layer: l, gradients: gradients, weights: weights}, prevErrs, nil
}

func meanSquare(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v * v
	}
	return sum / float64(len(values))
}
