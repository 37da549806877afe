package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/detection"
	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
	platformtesting "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/testing"
)

const sampleRate = 22050

// wavBytes renders mono float samples as a 16-bit PCM WAV payload.
func wavBytes(t *testing.T, samples []float64) []byte {
	t.Helper()

	var pcm bytes.Buffer
	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		binary.Write(&pcm, binary.LittleEndian, int16(s*math.MaxInt16))
	}

	var buf bytes.Buffer
	dataLen := uint32(pcm.Len())
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm.Bytes())
	return buf.Bytes()
}

// syntheticTone is a perfectly stationary sinusoid, the canonical
// text-to-speech artifact profile.
func syntheticTone(durationSecs float64) []float64 {
	n := int(durationSecs * sampleRate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = 0.5 * math.Sin(2*math.Pi*220*t)
	}
	return out
}

// humanLikeVoice mimics recorded speech: a drifting fundamental with
// harmonics, a moving amplitude envelope and a noise floor.
func humanLikeVoice(durationSecs float64) []float64 {
	n := int(durationSecs * sampleRate)
	out := make([]float64, n)
	state := uint32(99991)
	for i := range out {
		t := float64(i) / sampleRate
		f0 := 150.0 + 20.0*math.Sin(2*math.Pi*0.5*t)
		phase := 2 * math.Pi * f0 * t
		env := 0.5 + 0.3*math.Sin(2*math.Pi*1.3*t)

		v := math.Sin(phase) + 0.6*math.Sin(2*phase) + 0.4*math.Sin(3*phase)
		state = state*1664525 + 1013904223
		noise := (float64(state)/float64(math.MaxUint32))*2 - 1
		out[i] = env*0.25*v + 0.02*noise
	}
	return out
}

func newTestService(t *testing.T) *DetectionService {
	t.Helper()
	cfg := platformtesting.SetupTestConfig(t)
	return NewDetectionService(cfg, platformtesting.SetupTestLogger(t))
}

func TestAnalyze_SyntheticToneIsAIGenerated(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "English",
		Audio:    wavBytes(t, syntheticTone(3.0)),
	})
	platformtesting.AssertNoError(t, err)
	platformtesting.AssertEqual(t, detection.ClassificationAIGenerated, res.Classification)
	if res.Confidence <= 0.5 || res.Confidence > 1.0 {
		t.Errorf("AI verdict confidence out of range: %v", res.Confidence)
	}
	if res.Explanation == "" {
		t.Error("expected a non-empty explanation")
	}
}

func TestAnalyze_HumanLikeVoiceIsHuman(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "English",
		Audio:    wavBytes(t, humanLikeVoice(3.0)),
	})
	platformtesting.AssertNoError(t, err)
	platformtesting.AssertEqual(t, detection.ClassificationHuman, res.Classification)
	if res.Confidence < 0.5 {
		t.Errorf("human verdict confidence below 0.5: %v", res.Confidence)
	}
}

func TestAnalyze_ConfidenceIsRounded(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "Tamil",
		Audio:    wavBytes(t, syntheticTone(2.0)),
	})
	platformtesting.AssertNoError(t, err)

	scaled := res.Confidence * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Errorf("confidence %v not rounded to two decimals", res.Confidence)
	}
}

func TestAnalyze_UnsupportedLanguage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "Klingon",
		Audio:    wavBytes(t, syntheticTone(2.0)),
	})
	platformtesting.AssertError(t, err)
	if !platformerrors.IsKind(err, platformerrors.KindTransport) {
		t.Errorf("expected transport kind, got %v", err)
	}
}

func TestAnalyze_CaseSensitiveLanguage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "english",
		Audio:    wavBytes(t, syntheticTone(2.0)),
	})
	platformtesting.AssertError(t, err)
}

func TestAnalyze_DecodeFailures(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		audio []byte
	}{
		{"empty payload", nil},
		{"below payload floor", []byte("RIFF")},
		{"garbage payload", bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), AnalyzeRequest{
				Language: "English",
				Audio:    tt.audio,
			})
			platformtesting.AssertError(t, err)
			if !platformerrors.IsDecodeError(err) {
				t.Errorf("expected decode kind, got %v", err)
			}
		})
	}
}

func TestAnalyze_TooShortClip(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Language: "English",
		Audio:    wavBytes(t, syntheticTone(0.5)),
	})
	platformtesting.AssertError(t, err)
	if !platformerrors.IsDecodeError(err) {
		t.Errorf("expected decode kind for sub-second clip, got %v", err)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	svc := newTestService(t)
	payload := wavBytes(t, humanLikeVoice(2.0))

	first, err := svc.Analyze(context.Background(), AnalyzeRequest{Language: "Hindi", Audio: payload})
	platformtesting.AssertNoError(t, err)
	second, err := svc.Analyze(context.Background(), AnalyzeRequest{Language: "Hindi", Audio: payload})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, first.Classification, second.Classification)
	platformtesting.AssertInDelta(t, first.Confidence, second.Confidence, 1e-9)
	platformtesting.AssertEqual(t, first.Explanation, second.Explanation)
}
