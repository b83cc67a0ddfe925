// Package backprop holds the stateless numeric routines of online error backpropagation
// for sigmoid networks. Every function is a pure function of its arguments.
package backprop

// DeltaTable holds one delta per incoming connection: table[i][j] belongs to
// neuron i and its connection j from the previous layer.
type DeltaTable [][]float64

// ComputeError returns targets[i] - outputs[i] for every position.
func ComputeError(outputs, targets []float64) ([]float64, error) {
	if len(outputs) != len(targets) {
		return nil, mismatch("ComputeError: outputs vs targets", len(outputs), len(targets))
	}
	errs := make([]float64, len(outputs))
	for i := range outputs {
		errs[i] = targets[i] - outputs[i]
	}
	return errs, nil
}

// ComputeGradients returns outputs[i]*(1-outputs[i])*errors[i]*learningRate.
// Outputs must already be sigmoid activations.
func ComputeGradients(outputs, errors []float64, learningRate float64) ([]float64, error) {
	if len(outputs) != len(errors) {
		return nil, mismatch("ComputeGradients: errors vs outputs", len(errors), len(outputs))
	}
	gradients := make([]float64, len(outputs))
	for i, o := range outputs {
		gradients[i] = Dsigmoid(o) * errors[i] * learningRate
	}
	return gradients, nil
}

// ComputeDeltas multiplies each neuron's gradient into its incoming weights.
// weights[i] is the weight vector of neuron i of the layer, read before any update.
func ComputeDeltas(gradients []float64, weights [][]float64) (DeltaTable, error) {
	if len(gradients) != len(weights) {
		return nil, mismatch("ComputeDeltas: gradients vs layer size", len(gradients), len(weights))
	}
	deltas := make(DeltaTable, len(weights))
	for i, w := range weights {
		row := make([]float64, len(w))
		for j := range w {
			row[j] = gradients[i] * w[j]
		}
		deltas[i] = row
	}
	return deltas, nil
}

// Backpropagate sums the deltas of every connection column, giving the error
// signal of each of the width neurons in the previous layer.
func Backpropagate(deltas DeltaTable, width int) ([]float64, error) {
	for _, row := range deltas {
		if len(row) != width {
			return nil, mismatch("Backpropagate: connections vs previous layer size", len(row), width)
		}
	}
	signal := make([]float64, width)
	for _, row := range deltas {
		for j, d := range row {
			signal[j] += d
		}
	}
	return signal, nil
}

// Dsigmoid is the logistic derivative expressed through the sigmoid's own output.
func Dsigmoid(value float64) float64 {
	return value * (1 - value)
}
