package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the non-negative frequency bins
// of the discrete Fourier transform of data with its mean removed. Index k
// is k cycles over the length of data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest non-zero
// frequency in data and that component's share of total power. A flat
// series has period 0.
func DominantPeriod(data []float64) (period, share float64) {
	ps := PowerSpectrum(data)
	total, best, bestIdx := 0.0, 0.0, 0
	for i := 1; i < len(ps); i++ {
		p := ps[i] * ps[i]
		total += p
		if p > best {
			best, bestIdx = p, i
		}
	}
	if bestIdx == 0 || total == 0 {
		return 0, 0
	}
	return float64(len(data)) / float64(bestIdx), best / total
}
