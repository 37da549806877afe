// Package audio turns encoded payloads into canonical mono waveforms.
package audio

// Waveform is a mono PCM signal at a known sample rate. It lives for the
// duration of one classification request and is never persisted.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}
