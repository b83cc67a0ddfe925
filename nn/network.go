package nn

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"neuron_lib/random"
)

// Config controls how a Network initializes weights.
type Config struct {
	// WeightRange bounds freshly drawn weights. The zero value means DefaultWeightRange.
	WeightRange Range
	// Source draws the weights. Nil means a time-seeded random.Uniform.
	Source random.Source
}

func (c Config) withDefaults() Config {
	if c.WeightRange == (Range{}) {
		c.WeightRange = DefaultWeightRange
	}
	if c.Source == nil {
		c.Source = random.NewTimeSeeded()
	}
	return c
}

// Network is an ordered sequence of fully connected sigmoid layers.
// Layer 0 is the input layer and the last layer is the output layer.
//
// A Network is not safe for concurrent use: Input stores per-neuron
// transient state that Output reads back and clears.
type Network struct {
	layers      [][]*Neuron
	weightRange Range
	src         random.Source
}

// NewNetwork builds a network with sizes[i] neurons in layer i and random weights.
func NewNetwork(sizes []int, cfg Config) (*Network, error) {
	if len(sizes) < 2 {
		return nil, errors.Wrapf(ErrInvalidTopology, "need at least 2 layers, got %d", len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, errors.Wrapf(ErrInvalidTopology, "layer %d has %d neurons", i, s)
		}
	}
	cfg = cfg.withDefaults()

	net := &Network{
		layers:      make([][]*Neuron, len(sizes)),
		weightRange: cfg.WeightRange,
		src:         cfg.Source,
	}
	for i, s := range sizes {
		net.layers[i] = make([]*Neuron, s)
		for j := range net.layers[i] {
			net.layers[i][j] = NewNeuron(i)
		}
	}
	for i := 1; i < len(net.layers); i++ {
		net.reinitialize(i)
	}
	return net, nil
}

// Layers returns the number of layers.
func (net *Network) Layers() int { return len(net.layers) }

// Sizes returns the neuron count of every layer.
func (net *Network) Sizes() []int {
	sizes := make([]int, len(net.layers))
	for i, l := range net.layers {
		sizes[i] = len(l)
	}
	return sizes
}

// Neuron returns neuron index of layer.
func (net *Network) Neuron(layer, index int) (*Neuron, error) {
	if err := net.checkLayer(layer); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(net.layers[layer]) {
		return nil, errors.Wrapf(ErrMissingLayer, "layer %d has no neuron %d", layer, index)
	}
	return net.layers[layer][index], nil
}

// LayerWeights returns a copy of the incoming weights of every neuron in layer,
// one row per neuron.
func (net *Network) LayerWeights(layer int) ([][]float64, error) {
	if err := net.checkLayer(layer); err != nil {
		return nil, err
	}
	return layerWeights(net.layers[layer]), nil
}

// WeightMatrix returns the incoming weights of layer as a neurons x connections matrix.
// Layer 0 and layers whose rows disagree in length have no matrix form.
func (net *Network) WeightMatrix(layer int) (*mat.Dense, error) {
	if layer == 0 {
		return nil, errors.Wrap(ErrMissingLayer, "input layer has no weights")
	}
	rows, err := net.LayerWeights(layer)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "layer %d has no connections", layer)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.Wrapf(ErrDimensionMismatch, "layer %d neuron %d has %d weights, want %d", layer, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Input pushes values through every layer, leaving each neuron's output in place
// until Output is called.
func (net *Network) Input(values []float64) error {
	if err := net.checkForward(values); err != nil {
		return err
	}
	for i, n := range net.layers[0] {
		n.setOutput(values[i])
	}
	for l := 1; l < len(net.layers); l++ {
		inputs := layerOutputs(net.layers[l-1])
		for _, n := range net.layers[l] {
			n.SetInput(inputs)
			if _, err := n.ComputeOutput(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Output returns the output layer's values and clears every neuron's output.
// It fails with ErrMissingLayer when no Input is pending.
func (net *Network) Output() ([]float64, error) {
	if len(net.layers) == 0 {
		return nil, errors.Wrap(ErrMissingLayer, "network has no layers")
	}
	last := net.layers[len(net.layers)-1]
	out := make([]float64, len(last))
	for i, n := range last {
		v, ok := n.Output()
		if !ok {
			return nil, errors.Wrap(ErrMissingLayer, "no forward pass pending, call Input first")
		}
		out[i] = v
	}
	for _, l := range net.layers {
		for _, n := range l {
			n.clearOutput()
		}
	}
	return out, nil
}

// Forward computes the network output for values without touching neuron state.
// Outputs lie in (0,1) up to float64 precision; large weighted sums saturate to 0 or 1.
func (net *Network) Forward(values []float64) ([]float64, error) {
	acts, err := net.forward(values)
	if err != nil {
		return nil, err
	}
	return acts[len(acts)-1], nil
}

// forward returns the activations of every layer, input layer included.
func (net *Network) forward(values []float64) ([][]float64, error) {
	if err := net.checkForward(values); err != nil {
		return nil, err
	}
	acts := make([][]float64, len(net.layers))
	acts[0] = append([]float64{}, values...)
	for l := 1; l < len(net.layers); l++ {
		acts[l] = make([]float64, len(net.layers[l]))
		for i, n := range net.layers[l] {
			v, err := activate(acts[l-1], n.weights, n.bias)
			if err != nil {
				return nil, errors.Wrapf(err, "layer %d neuron %d", l, i)
			}
			acts[l][i] = v
		}
	}
	return acts, nil
}

// checkForward validates everything a forward pass depends on before any state is written.
func (net *Network) checkForward(values []float64) error {
	if len(net.layers) == 0 {
		return errors.Wrap(ErrMissingLayer, "network has no layers")
	}
	if len(values) != len(net.layers[0]) {
		return errors.Wrapf(ErrDimensionMismatch, "got %d inputs for %d input neurons", len(values), len(net.layers[0]))
	}
	for l := 1; l < len(net.layers); l++ {
		width := len(net.layers[l-1])
		for i, n := range net.layers[l] {
			if len(n.weights) != width {
				return errors.Wrapf(ErrDimensionMismatch, "layer %d neuron %d has %d weights for %d inputs", l, i, len(n.weights), width)
			}
		}
	}
	return nil
}

func (net *Network) checkLayer(layer int) error {
	if layer < 0 || layer >= len(net.layers) {
		return errors.Wrapf(ErrMissingLayer, "layer %d of %d", layer, len(net.layers))
	}
	return nil
}

// Copy returns a deep copy. Changes to the copy's neurons never reach net;
// only the random source is shared.
func (net *Network) Copy() *Network {
	c := &Network{
		layers:      make([][]*Neuron, len(net.layers)),
		weightRange: net.weightRange,
		src:         net.src,
	}
	for i, l := range net.layers {
		c.layers[i] = make([]*Neuron, len(l))
		for j, n := range l {
			c.layers[i][j] = n.Clone()
		}
	}
	return c
}

func layerOutputs(layer []*Neuron) []float64 {
	out := make([]float64, len(layer))
	for i, n := range layer {
		out[i] = n.output
	}
	return out
}

func layerWeights(layer []*Neuron) [][]float64 {
	rows := make([][]float64, len(layer))
	for i, n := range layer {
		rows[i] = n.Weights()
	}
	return rows
}
