package features

import "math"

// Slaney-style mel scale constants: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3.0
	melLogHz      = 1000.0
	melLogMel     = melLogHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27.0

func hzToMel(hz float64) float64 {
	if hz < melLogHz {
		return hz / melLinearStep
	}
	return melLogMel + math.Log(hz/melLogHz)/melLogStep
}

func melToHz(mel float64) float64 {
	if mel < melLogMel {
		return mel * melLinearStep
	}
	return melLogHz * math.Exp(melLogStep*(mel-melLogMel))
}

// melFilterbank builds numMels triangular filters over the FFT bins with
// Slaney area normalization.
func melFilterbank(sampleRate, numBins int) [][]float64 {
	fftFreqs := make([]float64, numBins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(sampleRate) / float64(frameLength)
	}

	maxMel := hzToMel(float64(sampleRate) / 2)
	melPoints := make([]float64, numMels+2)
	for i := range melPoints {
		melPoints[i] = melToHz(maxMel * float64(i) / float64(numMels+1))
	}

	filters := make([][]float64, numMels)
	for m := 0; m < numMels; m++ {
		lower, center, upper := melPoints[m], melPoints[m+1], melPoints[m+2]
		row := make([]float64, numBins)
		norm := 2.0 / (upper - lower)
		for k, f := range fftFreqs {
			switch {
			case f <= lower || f >= upper:
				// outside the triangle
			case f <= center:
				row[k] = norm * (f - lower) / (center - lower)
			default:
				row[k] = norm * (upper - f) / (upper - center)
			}
		}
		filters[m] = row
	}
	return filters
}

// melPowerSpectrogram projects the power spectrum onto the mel filterbank.
// Result is frame-major: [frame][mel].
func melPowerSpectrogram(spec *spectrogram) [][]float64 {
	filters := melFilterbank(spec.sampleRate, spec.numBins())
	out := make([][]float64, spec.numFrames())
	for t, frame := range spec.mag {
		row := make([]float64, numMels)
		for m, filter := range filters {
			var sum float64
			for k, w := range filter {
				if w != 0 {
					sum += w * frame[k] * frame[k]
				}
			}
			row[m] = sum
		}
		out[t] = row
	}
	return out
}

// powerToDB converts power values to decibels relative to the global peak,
// floored at amin and clamped 80 dB below the peak.
func powerToDB(frames [][]float64) [][]float64 {
	const topDB = 80.0

	ref := amin
	for _, frame := range frames {
		for _, p := range frame {
			if p > ref {
				ref = p
			}
		}
	}
	logRef := 10 * math.Log10(ref)

	out := make([][]float64, len(frames))
	for t, frame := range frames {
		row := make([]float64, len(frame))
		for i, p := range frame {
			db := 10*math.Log10(math.Max(p, amin)) - logRef
			if db < -topDB {
				db = -topDB
			}
			row[i] = db
		}
		out[t] = row
	}
	return out
}

// mfcc computes numMFCC cepstral coefficients per frame by an orthonormal
// DCT-II over the dB mel spectrum.
func mfcc(melDB [][]float64) [][]float64 {
	n := numMels
	scale0 := math.Sqrt(1.0 / float64(n))
	scale := math.Sqrt(2.0 / float64(n))

	out := make([][]float64, len(melDB))
	for t, frame := range melDB {
		row := make([]float64, numMFCC)
		for k := 0; k < numMFCC; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += frame[i] * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(n)))
			}
			if k == 0 {
				row[k] = sum * scale0
			} else {
				row[k] = sum * scale
			}
		}
		out[t] = row
	}
	return out
}

// delta estimates the local time derivative of each coefficient track with a
// 9-point regression window, replicating edges.
func delta(frames [][]float64) [][]float64 {
	if len(frames) == 0 {
		return nil
	}
	const halfWidth = 4
	var denom float64
	for m := 1; m <= halfWidth; m++ {
		denom += float64(m * m)
	}
	denom *= 2

	numFrames := len(frames)
	numCoeffs := len(frames[0])
	clamp := func(t int) int {
		if t < 0 {
			return 0
		}
		if t >= numFrames {
			return numFrames - 1
		}
		return t
	}

	out := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		row := make([]float64, numCoeffs)
		for c := 0; c < numCoeffs; c++ {
			var sum float64
			for m := 1; m <= halfWidth; m++ {
				sum += float64(m) * (frames[clamp(t+m)][c] - frames[clamp(t-m)][c])
			}
			row[c] = sum / denom
		}
		out[t] = row
	}
	return out
}
