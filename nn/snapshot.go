package nn

// Snapshot is the full weight and bias state of a network, layer by layer.
type Snapshot struct {
	Layers [][]NeuronSnapshot `json:"layers"`
}

// NeuronSnapshot is one neuron of a Snapshot.
type NeuronSnapshot struct {
	Layer   int       `json:"layer"`
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Sizes returns the neuron count of every layer in the snapshot.
func (s Snapshot) Sizes() []int {
	sizes := make([]int, len(s.Layers))
	for i, l := range s.Layers {
		sizes[i] = len(l)
	}
	return sizes
}

// Snapshot exports the network's weights and biases.
func (net *Network) Snapshot() Snapshot {
	s := Snapshot{Layers: make([][]NeuronSnapshot, len(net.layers))}
	for i, l := range net.layers {
		s.Layers[i] = make([]NeuronSnapshot, len(l))
		for j, n := range l {
			s.Layers[i][j] = NeuronSnapshot{
				Layer:   n.layer,
				Weights: n.Weights(),
				Bias:    n.bias,
			}
		}
	}
	return s
}

// LoadSnapshot replaces every layer with neurons rebuilt from s.
// Adjacent layers are not checked against each other; an inconsistent
// snapshot fails later with ErrDimensionMismatch on the first forward pass.
func (net *Network) LoadSnapshot(s Snapshot) {
	net.layers = make([][]*Neuron, len(s.Layers))
	for i, l := range s.Layers {
		net.layers[i] = make([]*Neuron, len(l))
		for j, ns := range l {
			n := NewNeuron(ns.Layer)
			n.SetWeights(ns.Weights)
			n.SetBias(ns.Bias)
			net.layers[i][j] = n
		}
	}
}

// FromSnapshot builds a network from s. cfg only matters for later topology changes.
func FromSnapshot(s Snapshot, cfg Config) *Network {
	cfg = cfg.withDefaults()
	net := &Network{weightRange: cfg.WeightRange, src: cfg.Source}
	net.LoadSnapshot(s)
	return net
}
