package features

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// eps protects every ratio/variation denominator. Required for the
	// pipeline to stay total on silent input.
	eps = 1e-6
	// amin floors power values before log/dB conversion.
	amin = 1e-10
)

// spectrogram holds the magnitude STFT of a signal, frame-major.
type spectrogram struct {
	mag        [][]float64 // mag[frame][bin]
	freqs      []float64   // bin center frequencies in Hz
	sampleRate int
}

func (s *spectrogram) numFrames() int { return len(s.mag) }
func (s *spectrogram) numBins() int   { return len(s.freqs) }

// hannWindow returns a periodic Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// reflectIndex maps an out-of-range index into [0, n) by mirroring around
// the signal edges without repeating them.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i = ((i % period) + period) % period
	if i >= n {
		i = period - i
	}
	return i
}

// computeSpectrogram computes |STFT| with a periodic Hann window, centered
// frames and reflect padding, so frame t is anchored at sample t*hopLength.
func computeSpectrogram(samples []float64, sampleRate int) *spectrogram {
	n := len(samples)
	if n == 0 {
		return &spectrogram{sampleRate: sampleRate}
	}

	window := hannWindow(frameLength)
	fft := fourier.NewFFT(frameLength)
	numBins := frameLength/2 + 1

	numFrames := 1 + n/hopLength
	mag := make([][]float64, numFrames)
	buf := make([]float64, frameLength)
	coeffs := make([]complex128, numBins)

	pad := frameLength / 2
	for t := 0; t < numFrames; t++ {
		start := t*hopLength - pad
		for j := 0; j < frameLength; j++ {
			buf[j] = samples[reflectIndex(start+j, n)] * window[j]
		}
		coeffs = fft.Coefficients(coeffs, buf)

		row := make([]float64, numBins)
		for k, c := range coeffs {
			row[k] = cmplx.Abs(c)
		}
		mag[t] = row
	}

	freqs := make([]float64, numBins)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(frameLength)
	}

	return &spectrogram{mag: mag, freqs: freqs, sampleRate: sampleRate}
}
