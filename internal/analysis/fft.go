package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/lwave/internal/dynamo"
)

// PowerSpectrum returns |F(k)| for the non-negative frequencies of data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Spectrum pairs the power spectrum of f with angular wavenumbers for grid
// spacing h.
type Spectrum struct {
	K     []float64
	Power []float64
}

func NewSpectrum(f dynamo.Field, h float64) Spectrum {
	ps := PowerSpectrum(f)
	k := make([]float64, len(ps))
	n := float64(len(f))
	for i := range k {
		k[i] = 2 * math.Pi * float64(i) / (n * h)
	}
	return Spectrum{K: k, Power: ps}
}

// Dominant returns the wavenumber carrying the most power, skipping the mean.
func (s Spectrum) Dominant() float64 {
	best, at := -1.0, 0.0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > best {
			best, at = s.Power[i], s.K[i]
		}
	}
	return at
}

// Bandwidth is the wavenumber below which the given fraction of the spectral
// power lies.
func (s Spectrum) Bandwidth(fraction float64) float64 {
	total := 0.0
	for _, p := range s.Power {
		total += p * p
	}
	if total == 0 {
		return 0
	}
	acc := 0.0
	for i, p := range s.Power {
		acc += p * p
		if acc >= fraction*total {
			return s.K[i]
		}
	}
	return s.K[len(s.K)-1]
}
