package features

import "math"

// frameRMS computes root-mean-square energy per analysis frame.
func frameRMS(samples []float64) []float64 {
	return mapFrames(samples, func(frame []float64) float64 {
		var sum float64
		for _, s := range frame {
			sum += s * s
		}
		return math.Sqrt(sum / float64(len(frame)))
	})
}

// frameZCR computes the zero-crossing rate per analysis frame.
func frameZCR(samples []float64) []float64 {
	return mapFrames(samples, func(frame []float64) float64 {
		var crossings int
		for i := 1; i < len(frame); i++ {
			if (frame[i-1] >= 0) != (frame[i] >= 0) {
				crossings++
			}
		}
		return float64(crossings) / float64(len(frame))
	})
}

// mapFrames slides the analysis window over the signal and reduces each
// frame to a scalar. The tail shorter than a full frame is dropped.
func mapFrames(samples []float64, reduce func([]float64) float64) []float64 {
	if len(samples) < frameLength {
		if len(samples) == 0 {
			return nil
		}
		return []float64{reduce(samples)}
	}

	numFrames := 1 + (len(samples)-frameLength)/hopLength
	out := make([]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * hopLength
		out[t] = reduce(samples[start : start+frameLength])
	}
	return out
}

// onsetStrength derives an onset envelope as the positive spectral flux of
// the dB mel spectrogram, averaged over mel bands.
func onsetStrength(melDB [][]float64) []float64 {
	if len(melDB) == 0 {
		return nil
	}
	env := make([]float64, len(melDB))
	for t := 1; t < len(melDB); t++ {
		var sum float64
		for m := range melDB[t] {
			if d := melDB[t][m] - melDB[t-1][m]; d > 0 {
				sum += d
			}
		}
		env[t] = sum / float64(len(melDB[t]))
	}
	return env
}

// Plausible tempo search range in beats per minute.
const (
	tempoMinBPM = 30.0
	tempoMaxBPM = 300.0
)

// estimateTempo picks the tempo whose beat period maximizes the onset
// envelope autocorrelation. Returns 0 for an energyless envelope, which is
// the documented default for silence.
func estimateTempo(env []float64, sampleRate int) float64 {
	var energy float64
	for _, e := range env {
		energy += e
	}
	if energy < eps || len(env) < 2 {
		return 0
	}

	framesPerSecond := float64(sampleRate) / hopLength
	minLag := int(60.0 / tempoMaxBPM * framesPerSecond)
	maxLag := int(60.0 / tempoMinBPM * framesPerSecond)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(env) {
		maxLag = len(env) - 1
	}
	if maxLag < minLag {
		return 0
	}

	m := mean(env)
	bestLag, bestCorr := minLag, math.Inf(-1)
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for t := lag; t < len(env); t++ {
			corr += (env[t] - m) * (env[t-lag] - m)
		}
		corr /= float64(len(env) - lag)
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	return 60.0 * framesPerSecond / float64(bestLag)
}
