package nn

import (
	"math"

	"github.com/pkg/errors"

	"neuron_lib/random"
)

// Range is the closed interval weights are drawn from at initialization.
type Range struct {
	Min, Max float64
}

// DefaultWeightRange is used when a Config leaves WeightRange unset.
var DefaultWeightRange = Range{Min: -1, Max: 1}

// Neuron is a single sigmoid unit. Layer-0 neurons have no weights and
// receive their output directly from the network input.
type Neuron struct {
	layer   int
	weights []float64
	bias    float64

	inputs    []float64
	output    float64
	hasOutput bool
}

// NewNeuron returns a neuron tagged with its layer index, with no weights and zero bias.
func NewNeuron(layer int) *Neuron {
	return &Neuron{layer: layer, weights: []float64{}}
}

// InitializeWeights draws one weight per neuron of previous, replacing any existing set.
func (n *Neuron) InitializeWeights(previous []*Neuron, r Range, src random.Source) {
	n.weights = random.Array(src, len(previous), r.Min, r.Max)
}

// SetInput stores a copy of the values feeding this neuron.
func (n *Neuron) SetInput(values []float64) {
	n.inputs = append(n.inputs[:0], values...)
}

// ComputeOutput applies the sigmoid to the weighted input sum plus bias and stores the result.
func (n *Neuron) ComputeOutput() (float64, error) {
	out, err := activate(n.inputs, n.weights, n.bias)
	if err != nil {
		return 0, errors.Wrapf(err, "layer %d neuron", n.layer)
	}
	n.setOutput(out)
	return out, nil
}

// SetWeights overwrites the weight vector. No check against adjacent layers is made.
func (n *Neuron) SetWeights(values []float64) {
	n.weights = append([]float64{}, values...)
}

// SetBias overwrites the bias.
func (n *Neuron) SetBias(value float64) {
	n.bias = value
}

// Layer returns the index of the layer the neuron belongs to.
func (n *Neuron) Layer() int { return n.layer }

// Weights returns a copy of the incoming weights.
func (n *Neuron) Weights() []float64 { return append([]float64{}, n.weights...) }

// Bias returns the bias.
func (n *Neuron) Bias() float64 { return n.bias }

// Output returns the last computed output, and false once it has been cleared.
func (n *Neuron) Output() (float64, bool) { return n.output, n.hasOutput }

// Clone returns an independent copy, transient state included.
func (n *Neuron) Clone() *Neuron {
	c := *n
	c.weights = append([]float64{}, n.weights...)
	if n.inputs != nil {
		c.inputs = append([]float64{}, n.inputs...)
	}
	return &c
}

func (n *Neuron) setOutput(v float64) {
	n.output = v
	n.hasOutput = true
}

func (n *Neuron) clearOutput() {
	n.output = 0
	n.hasOutput = false
}

// Sigmoid is the logistic function 1/(1+e^-t).
// In float64 it saturates: for t above roughly 37 the result rounds to exactly 1,
// and for t below roughly -710 e^-t overflows and the result is exactly 0.
func Sigmoid(t float64) float64 {
	return 1.0 / (1.0 + math.Exp(-t))
}

func activate(inputs, weights []float64, bias float64) (float64, error) {
	if len(inputs) != len(weights) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "got %d inputs for %d weights", len(inputs), len(weights))
	}
	sum := bias
	for i, x := range inputs {
		sum += x * weights[i]
	}
	return Sigmoid(sum), nil
}
