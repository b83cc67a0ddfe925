package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds training configuration
type Config struct {
	Architecture      []int
	Task              string
	Epochs            int
	LearningRate      float64
	Seed              uint64
	WeightMin         float64
	WeightMax         float64
	FreezeFirstHidden bool
	GrowLayer         int
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		arch[i] = n
	}
	return arch, nil
}

// ParseVector parses a space or comma separated list of reals.
func ParseVector(s string) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return errors.New("architecture must have at least 2 layers (input and output)")
	}
	for i, n := range config.Architecture {
		if n <= 0 {
			return errors.Errorf("layer %d must have a positive neuron count, got %d", i, n)
		}
	}

	if config.Epochs <= 0 {
		return errors.New("epochs must be positive")
	}

	if !(config.LearningRate > 0 && config.LearningRate <= 1) {
		return errors.Errorf("learning rate must be in (0, 1], got %v", config.LearningRate)
	}

	if config.WeightMin >= config.WeightMax {
		return errors.Errorf("weight range [%v, %v] is empty", config.WeightMin, config.WeightMax)
	}

	if config.GrowLayer < 0 || config.GrowLayer >= len(config.Architecture)-1 {
		return errors.Errorf("grow layer %d must be a hidden layer (1..%d), or 0 for none", config.GrowLayer, len(config.Architecture)-2)
	}

	if _, ok := truthTables[config.Task]; !ok {
		return errors.Errorf("unknown task %q", config.Task)
	}
	if config.Architecture[0] != 2 || config.Architecture[len(config.Architecture)-1] != 1 {
		return errors.Errorf("task %q needs 2 inputs and 1 output, architecture is %v", config.Task, config.Architecture)
	}

	return nil
}
