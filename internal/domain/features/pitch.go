package features

// pitchStats summarizes the per-frame fundamental frequency track.
type pitchStats struct {
	mean        float64
	std         float64
	rng         float64
	variation   float64
	consistency float64
}

// trackPitch estimates one pitch per frame as the frequency of the
// maximum-energy bin, keeping only frames with a positive estimate. A frame
// whose energy peaks at DC (bin 0) counts as unvoiced.
func trackPitch(spec *spectrogram) []float64 {
	var pitches []float64
	for _, frame := range spec.mag {
		best := 0
		for k, m := range frame {
			if m > frame[best] {
				best = k
			}
		}
		if f := spec.freqs[best]; f > 0 {
			pitches = append(pitches, f)
		}
	}
	return pitches
}

// computePitchStats reduces a pitch track to the bundle statistics. An empty
// track resolves to all-zero defaults rather than an error: no voiced frames
// is a legitimate outcome for silence or noise.
func computePitchStats(pitches []float64) pitchStats {
	if len(pitches) == 0 {
		return pitchStats{}
	}

	m := mean(pitches)
	s := popStd(pitches)

	lo, hi := pitches[0], pitches[0]
	for _, p := range pitches[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}

	variation := s / (m + eps)
	return pitchStats{
		mean:        m,
		std:         s,
		rng:         hi - lo,
		variation:   variation,
		consistency: 1.0 / (variation + eps),
	}
}
