// Package random supplies the uniform number source used for weight initialization.
package random

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
)

// Precision is the number of decimal digits kept on every drawn value.
const Precision = 4

// Source produces uniformly distributed reals in [min, max].
type Source interface {
	Float64(min, max float64) float64
}

// Uniform draws from distuv.Uniform using its own seeded generator.
// It is not safe for concurrent use.
type Uniform struct {
	src rand.Source
}

// NewUniform returns a Uniform seeded with seed. Equal seeds give equal sequences.
func NewUniform(seed uint64) *Uniform {
	return &Uniform{src: rand.NewSource(seed)}
}

// NewTimeSeeded returns a Uniform seeded from the wall clock.
func NewTimeSeeded() *Uniform {
	return NewUniform(uint64(time.Now().UnixNano()))
}

// Float64 returns a value in [min, max] rounded to Precision digits.
// Bounds may be given in either order.
func (u *Uniform) Float64(min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return scalar.Round(min, Precision)
	}
	dist := distuv.Uniform{
		Min: min,
		Max: max,
		Src: u.src,
	}
	return scalar.Round(dist.Rand(), Precision)
}

// Array fills a slice of size values, mirroring how a layer's weight vector is drawn.
func Array(src Source, size int, min, max float64) []float64 {
	data := make([]float64, size)
	for i := range data {
		data[i] = src.Float64(min, max)
	}
	return data
}
