package nn

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuron_lib/random"
)

func newTestNetwork(t *testing.T, sizes ...int) *Network {
	t.Helper()
	net, err := NewNetwork(sizes, Config{Source: random.NewUniform(42)})
	require.NoError(t, err)
	return net
}

func assertShape(t *testing.T, net *Network) {
	t.Helper()
	for l := 1; l < net.Layers(); l++ {
		rows, err := net.LayerWeights(l)
		require.NoError(t, err)
		for i, w := range rows {
			assert.Len(t, w, len(net.layers[l-1]), "layer %d neuron %d", l, i)
		}
	}
}

func TestNewNetworkShapes(t *testing.T) {
	for _, sizes := range [][]int{{2, 1}, {2, 3, 1}, {4, 5, 3, 2}, {1, 1, 1, 1, 1}} {
		net := newTestNetwork(t, sizes...)
		assert.Equal(t, sizes, net.Sizes())
		assertShape(t, net)
		for _, n := range net.layers[0] {
			assert.Empty(t, n.Weights())
		}
	}
}

func TestNewNetworkRejectsBadTopology(t *testing.T) {
	for _, sizes := range [][]int{nil, {3}, {2, 0, 1}, {2, -1}} {
		_, err := NewNetwork(sizes, Config{})
		assert.True(t, errors.Is(err, ErrInvalidTopology), "sizes %v", sizes)
	}
}

func TestNewNetworkWeightRange(t *testing.T) {
	net, err := NewNetwork([]int{3, 8, 2}, Config{
		WeightRange: Range{Min: 0.1, Max: 0.2},
		Source:      random.NewUniform(3),
	})
	require.NoError(t, err)
	for l := 1; l < net.Layers(); l++ {
		rows, _ := net.LayerWeights(l)
		for _, w := range rows {
			for _, v := range w {
				assert.True(t, v >= 0.1 && v <= 0.2, "weight %v out of range", v)
			}
		}
	}
}

func TestInputOutput(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	require.NoError(t, net.Input([]float64{1, 0}))
	out, err := net.Output()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0] > 0 && out[0] < 1)
}

func TestOutputsInOpenInterval(t *testing.T) {
	net := newTestNetwork(t, 4, 6, 5, 3)
	src := random.NewUniform(9)
	for i := 0; i < 50; i++ {
		in := random.Array(src, 4, -5, 5)
		require.NoError(t, net.Input(in))
		out, err := net.Output()
		require.NoError(t, err)
		for _, v := range out {
			assert.True(t, v > 0 && v < 1, "output %v", v)
		}
	}
}

func TestOutputSaturatesAtFloatLimits(t *testing.T) {
	net := FromSnapshot(Snapshot{Layers: [][]NeuronSnapshot{
		{{Layer: 0}, {Layer: 0}},
		{{Layer: 1, Weights: []float64{1, 1}}},
	}}, Config{})

	out, err := net.Forward([]float64{1000, 1000})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out[0])

	out, err = net.Forward([]float64{-1000, -1000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0])

	out, err = net.Forward([]float64{10, 10})
	require.NoError(t, err)
	assert.True(t, out[0] > 0 && out[0] < 1, "output %v", out[0])
}

func TestOutputClearsState(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	require.NoError(t, net.Input([]float64{1, 0}))
	_, err := net.Output()
	require.NoError(t, err)

	for _, l := range net.layers {
		for _, n := range l {
			_, ok := n.Output()
			assert.False(t, ok)
		}
	}

	_, err = net.Output()
	assert.True(t, errors.Is(err, ErrMissingLayer))
}

func TestOutputBeforeInput(t *testing.T) {
	net := newTestNetwork(t, 2, 2)
	_, err := net.Output()
	assert.True(t, errors.Is(err, ErrMissingLayer))
}

func TestInputMismatch(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	err := net.Input([]float64{1, 0, 1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = net.Forward([]float64{1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestForwardMatchesInputOutput(t *testing.T) {
	net := newTestNetwork(t, 3, 4, 2)
	in := []float64{0.3, -0.7, 1}

	direct, err := net.Forward(in)
	require.NoError(t, err)

	require.NoError(t, net.Input(in))
	out, err := net.Output()
	require.NoError(t, err)
	assert.Equal(t, out, direct)

	// Forward leaves no pending output behind.
	_, err = net.Forward(in)
	require.NoError(t, err)
	_, err = net.Output()
	assert.True(t, errors.Is(err, ErrMissingLayer))
}

func TestForwardKnownValue(t *testing.T) {
	net := FromSnapshot(Snapshot{Layers: [][]NeuronSnapshot{
		{{Layer: 0}, {Layer: 0}},
		{{Layer: 1, Weights: []float64{0.5, -0.25}, Bias: 0.1}},
	}}, Config{})
	out, err := net.Forward([]float64{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(0.5-0.5+0.1), out[0], 1e-12)
}

func TestAddNeuron(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	require.NoError(t, net.AddNeuron(1))

	assert.Equal(t, []int{2, 4, 1}, net.Sizes())
	out, err := net.Neuron(2, 0)
	require.NoError(t, err)
	assert.Len(t, out.Weights(), 4)
	added, err := net.Neuron(1, 3)
	require.NoError(t, err)
	assert.Len(t, added.Weights(), 2)
	assert.Equal(t, 1, added.Layer())
	assertShape(t, net)

	result, err := net.Forward([]float64{1, 0})
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestAddNeuronToOutputLayer(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	require.NoError(t, net.AddNeuron(2))
	assert.Equal(t, []int{2, 3, 2}, net.Sizes())
	out, err := net.Forward([]float64{0, 1})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestAddNeuronBounds(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	for _, layer := range []int{0, -1, 3} {
		err := net.AddNeuron(layer)
		assert.True(t, errors.Is(err, ErrMissingLayer), "layer %d", layer)
	}
	assert.Equal(t, []int{2, 3, 1}, net.Sizes())
}

func TestAddHiddenLayer(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 2)
	require.NoError(t, net.AddHiddenLayer())

	assert.Equal(t, []int{2, 3, 1, 2}, net.Sizes())
	assertShape(t, net)
	for _, n := range net.layers[3] {
		assert.Equal(t, 3, n.Layer())
		assert.Len(t, n.Weights(), 1)
	}
	assert.Equal(t, 2, net.layers[2][0].Layer())

	out, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCopyIsIndependent(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	before := net.Snapshot()

	clone := net.Copy()
	n, err := clone.Neuron(1, 0)
	require.NoError(t, err)
	n.SetWeights([]float64{9, 9})
	n.SetBias(9)
	require.NoError(t, clone.AddNeuron(1))
	_, err = clone.Train([]float64{1, 0}, []float64{1}, TrainOptions{})
	require.NoError(t, err)

	assert.Equal(t, before, net.Snapshot())
	assert.Equal(t, []int{2, 3, 1}, net.Sizes())
}

func TestWeightMatrix(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	m, err := net.WeightMatrix(1)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	rows, _ := net.LayerWeights(1)
	assert.Equal(t, rows[2][1], m.At(2, 1))

	_, err = net.WeightMatrix(0)
	assert.True(t, errors.Is(err, ErrMissingLayer))
	_, err = net.WeightMatrix(5)
	assert.True(t, errors.Is(err, ErrMissingLayer))
}

func TestNeuronComputeOutputMismatch(t *testing.T) {
	n := NewNeuron(1)
	n.SetWeights([]float64{0.1, 0.2})
	n.SetInput([]float64{1})
	_, err := n.ComputeOutput()
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	n.SetInput([]float64{1, 1})
	v, err := n.ComputeOutput()
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(0.3), v, 1e-12)
	got, ok := n.Output()
	assert.True(t, ok)
	assert.Equal(t, v, got)
}
