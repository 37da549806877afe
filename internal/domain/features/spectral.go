package features

import (
	"math"
	"sort"
)

const rolloffFraction = 0.85

// frameSpectral holds per-frame spectral descriptor tracks.
type frameSpectral struct {
	centroid  []float64
	bandwidth []float64
	rolloff   []float64
	flatness  []float64
}

func computeFrameSpectral(spec *spectrogram) *frameSpectral {
	n := spec.numFrames()
	out := &frameSpectral{
		centroid:  make([]float64, n),
		bandwidth: make([]float64, n),
		rolloff:   make([]float64, n),
		flatness:  make([]float64, n),
	}

	for t, frame := range spec.mag {
		var total, weighted float64
		for k, m := range frame {
			total += m
			weighted += m * spec.freqs[k]
		}
		centroid := weighted / (total + eps)
		out.centroid[t] = centroid

		var spread float64
		for k, m := range frame {
			d := spec.freqs[k] - centroid
			spread += m * d * d
		}
		out.bandwidth[t] = math.Sqrt(spread / (total + eps))

		// Rolloff: lowest frequency below which rolloffFraction of the
		// frame's magnitude accumulates.
		target := rolloffFraction * total
		var cum float64
		for k, m := range frame {
			cum += m
			if cum >= target {
				out.rolloff[t] = spec.freqs[k]
				break
			}
		}

		// Flatness: geometric over arithmetic mean of the power spectrum.
		var logSum, powSum float64
		for _, m := range frame {
			p := math.Max(m*m, amin)
			logSum += math.Log(p)
			powSum += p
		}
		bins := float64(len(frame))
		out.flatness[t] = math.Exp(logSum/bins) / (powSum/bins + eps)
	}
	return out
}

// contrastBandEdges are octave-spaced starting at 200 Hz, the conventional
// split for speech-band contrast analysis.
var contrastBandEdges = []float64{0, 200, 400, 800, 1600, 3200, 6400}

// computeSpectralContrast returns the mean peak-to-valley contrast (dB) per
// sub-band, averaged across frames. One entry per band plus the residual
// band up to Nyquist.
func computeSpectralContrast(spec *spectrogram) []float64 {
	edges := append(append([]float64{}, contrastBandEdges...), float64(spec.sampleRate)/2)
	numBands := len(edges) - 1
	sums := make([]float64, numBands)

	if spec.numFrames() == 0 {
		return sums
	}

	// The top/bottom quantile of each band defines its peak and valley.
	const quantile = 0.02

	for _, frame := range spec.mag {
		for b := 0; b < numBands; b++ {
			var band []float64
			for k, f := range spec.freqs {
				if f >= edges[b] && f < edges[b+1] {
					band = append(band, math.Max(frame[k]*frame[k], amin))
				}
			}
			if len(band) == 0 {
				continue
			}
			sort.Float64s(band)
			take := int(quantile * float64(len(band)))
			if take < 1 {
				take = 1
			}
			valley := mean(band[:take])
			peak := mean(band[len(band)-take:])
			sums[b] += 10*math.Log10(peak+amin) - 10*math.Log10(valley+amin)
		}
	}

	frames := float64(spec.numFrames())
	for b := range sums {
		sums[b] /= frames
	}
	return sums
}

// computeFormantPeaks approximates vocal-tract resonances by the frequencies
// of the top-n bins of the time-averaged spectrum. This is a crude proxy for
// formant tracking, kept deliberately simple.
func computeFormantPeaks(spec *spectrogram, n int) []float64 {
	if spec.numFrames() == 0 || spec.numBins() == 0 {
		return make([]float64, 0)
	}

	avg := make([]float64, spec.numBins())
	for _, frame := range spec.mag {
		for k, m := range frame {
			avg[k] += m
		}
	}

	type binMag struct {
		bin int
		mag float64
	}
	ranked := make([]binMag, len(avg))
	for k, m := range avg {
		ranked[k] = binMag{bin: k, mag: m}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].mag < ranked[j].mag })

	if n > len(ranked) {
		n = len(ranked)
	}
	peaks := make([]float64, 0, n)
	for _, bm := range ranked[len(ranked)-n:] {
		peaks = append(peaks, spec.freqs[bm.bin])
	}
	return peaks
}
