package nn

import "github.com/pkg/errors"

// NewNeuron returns a neuron for layer with weights drawn against layer-1.
// The neuron is not attached to the network.
func (net *Network) NewNeuron(layer int) (*Neuron, error) {
	if layer == 0 {
		return nil, errors.Wrap(ErrMissingLayer, "input layer has no previous layer")
	}
	if err := net.checkLayer(layer); err != nil {
		return nil, err
	}
	n := NewNeuron(layer)
	n.InitializeWeights(net.layers[layer-1], net.weightRange, net.src)
	return n, nil
}

// AddNeuron appends a fresh neuron to layer and redraws the weights of the next
// layer so every neuron there gains a connection to it. The input layer cannot
// grow. Growing the output layer widens the network output.
func (net *Network) AddNeuron(layer int) error {
	n, err := net.NewNeuron(layer)
	if err != nil {
		return errors.Wrap(err, "AddNeuron")
	}
	net.layers[layer] = append(net.layers[layer], n)
	if layer+1 < len(net.layers) {
		net.reinitialize(layer + 1)
	}
	return nil
}

// AddHiddenLayer inserts a single-neuron hidden layer in front of the output layer.
// The output layer keeps its width and gets fresh weights against the new layer.
func (net *Network) AddHiddenLayer() error {
	if len(net.layers) < 2 {
		return errors.Wrapf(ErrMissingLayer, "AddHiddenLayer: network has %d layers", len(net.layers))
	}
	last := len(net.layers) - 1
	output := net.layers[last]
	net.layers = net.layers[:last]

	hidden := NewNeuron(last)
	hidden.InitializeWeights(net.layers[last-1], net.weightRange, net.src)
	net.layers = append(net.layers, []*Neuron{hidden}, output)

	for _, n := range output {
		n.layer = last + 1
	}
	net.reinitialize(last + 1)
	return nil
}

// reinitialize redraws the weights of every neuron in layer against layer-1.
func (net *Network) reinitialize(layer int) {
	for _, n := range net.layers[layer] {
		n.InitializeWeights(net.layers[layer-1], net.weightRange, net.src)
	}
}
