package features

import "sort"

// hpssKernel is the median filter length used to separate tonal from
// transient energy: long in time for harmonics, wide in frequency for
// percussive transients.
const hpssKernel = 31

// harmonicPercussiveRatios splits the spectrogram's magnitude into harmonic
// and percussive shares via median-filter soft masking. The two shares sum
// to ~1 for a non-silent signal and are both 0 for pure silence.
func harmonicPercussiveRatios(spec *spectrogram) (harmonic, percussive float64) {
	numFrames := spec.numFrames()
	numBins := spec.numBins()
	if numFrames == 0 || numBins == 0 {
		return 0, 0
	}

	half := hpssKernel / 2
	scratch := make([]float64, 0, hpssKernel)

	medianAt := func(get func(int) float64, i, n int) float64 {
		lo, hi := i-half, i+half
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}
		scratch = scratch[:0]
		for j := lo; j <= hi; j++ {
			scratch = append(scratch, get(j))
		}
		sort.Float64s(scratch)
		return scratch[len(scratch)/2]
	}

	var totalMag, harmonicMag, percussiveMag float64
	for t := 0; t < numFrames; t++ {
		for k := 0; k < numBins; k++ {
			m := spec.mag[t][k]
			totalMag += m

			// Harmonic envelope: median across time at fixed frequency.
			h := medianAt(func(j int) float64 { return spec.mag[j][k] }, t, numFrames)
			// Percussive envelope: median across frequency at fixed time.
			p := medianAt(func(j int) float64 { return spec.mag[t][j] }, k, numBins)

			h2, p2 := h*h, p*p
			denom := h2 + p2
			if denom < amin {
				continue
			}
			harmonicMag += m * h2 / denom
			percussiveMag += m * p2 / denom
		}
	}

	return harmonicMag / (totalMag + eps), percussiveMag / (totalMag + eps)
}
