package utils

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Line is one training example.
type Line struct {
	Inputs  []float64
	Targets []float64
}

type Lines []Line

var truthTables = map[string][4]float64{
	"xor": {0, 1, 1, 0},
	"and": {0, 0, 0, 1},
	"or":  {0, 1, 1, 1},
}

// TruthTable returns the four examples of a two-input boolean task.
func TruthTable(task string) (Lines, error) {
	outs, ok := truthTables[task]
	if !ok {
		return nil, errors.Errorf("unknown task %q", task)
	}
	lines := make(Lines, 0, 4)
	for i, o := range outs {
		lines = append(lines, Line{
			Inputs:  []float64{float64(i >> 1), float64(i & 1)},
			Targets: []float64{o},
		})
	}
	return lines, nil
}

// Normalize rescales values linearly onto [0, 1] using their own minimum and
// maximum. A constant vector maps to all zeros.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// MeanSquaredError is the mean of squared differences between outputs and targets.
func MeanSquaredError(outputs, targets []float64) (float64, error) {
	if len(outputs) != len(targets) {
		return 0, errors.Errorf("got %d outputs for %d targets", len(outputs), len(targets))
	}
	if len(outputs) == 0 {
		return 0, nil
	}
	d := floats.Distance(outputs, targets, 2)
	return d * d / float64(len(outputs)), nil
}
