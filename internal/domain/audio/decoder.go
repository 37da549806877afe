package audio

import (
	"bytes"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
)

const minAnalysisDuration = 1.0 // seconds

// Decoder converts an encoded audio payload into a canonical mono Waveform.
// The container format is sniffed from magic bytes; unknown payloads get an
// mp3 attempt first, then every other supported codec in turn.
type Decoder struct {
	sampleRate      int
	maxDuration     float64
	minPayloadBytes int
}

// Options configures a Decoder. Zero values fall back to the canonical
// 22050 Hz rate, a 300 second cap and a 100 byte payload floor.
type Options struct {
	SampleRate      int
	MaxDuration     int
	MinPayloadBytes int
}

func NewDecoder(opts Options) *Decoder {
	d := &Decoder{
		sampleRate:      opts.SampleRate,
		maxDuration:     float64(opts.MaxDuration),
		minPayloadBytes: opts.MinPayloadBytes,
	}
	if d.sampleRate <= 0 {
		d.sampleRate = 22050
	}
	if d.maxDuration <= 0 {
		d.maxDuration = 300
	}
	if d.minPayloadBytes <= 0 {
		d.minPayloadBytes = 100
	}
	return d
}

// SampleRate returns the canonical rate every decoded waveform carries.
func (d *Decoder) SampleRate() int { return d.sampleRate }

// Decode sniffs the payload format, decodes it to PCM, downmixes to mono and
// resamples to the canonical rate. All failures carry KindDecode.
func (d *Decoder) Decode(data []byte) (*Waveform, error) {
	if len(data) < d.minPayloadBytes {
		return nil, platformerrors.Newf(platformerrors.KindDecode,
			"decode audio", "payload too short to be valid audio: %d bytes", len(data))
	}

	format := DetectFormat(data)
	samples, nativeRate, err := d.decodeAs(format, data)
	if err != nil {
		return nil, err
	}

	samples = resample(samples, nativeRate, d.sampleRate)
	wave := &Waveform{Samples: samples, SampleRate: d.sampleRate}

	if dur := wave.Duration(); dur < minAnalysisDuration {
		return nil, platformerrors.Newf(platformerrors.KindDecode,
			"decode audio", "audio too short for analysis: %.2fs", dur)
	} else if dur > d.maxDuration {
		return nil, platformerrors.Newf(platformerrors.KindDecode,
			"decode audio", "audio exceeds maximum duration: %.0fs > %.0fs", dur, d.maxDuration)
	}

	return wave, nil
}

func (d *Decoder) decodeAs(format Format, data []byte) ([]float64, int, error) {
	switch format {
	case FormatMP3:
		return decodeMP3(data)
	case FormatOGG:
		return decodeOGG(data)
	case FormatWAV:
		return decodeWAV(data)
	case FormatFLAC:
		return decodeFLAC(data)
	case FormatAIFF:
		return decodeAIFF(data)
	default:
		return decodeFallback(data)
	}
}

// decodeFallback handles unrecognized headers: mp3 first (raw mp3 streams
// often lack an ID3 tag and a frame-sync prefix), then every other codec.
func decodeFallback(data []byte) ([]float64, int, error) {
	decoders := []func([]byte) ([]float64, int, error){
		decodeMP3, decodeWAV, decodeFLAC, decodeOGG, decodeAIFF,
	}
	var lastErr error
	for _, decode := range decoders {
		samples, rate, err := decode(data)
		if err == nil {
			return samples, rate, nil
		}
		lastErr = err
	}
	return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
		"decode audio", "no supported codec could parse the payload", lastErr)
}

func decodeMP3(data []byte) ([]float64, int, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode mp3", "cannot parse mp3 stream", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode mp3", "cannot read mp3 frames", err)
	}
	if len(pcm) < 4 {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode mp3", "mp3 stream contains no audio frames")
	}

	frames := len(pcm) / 4
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(uint16(pcm[i*4]) | uint16(pcm[i*4+1])<<8)
		r := int16(uint16(pcm[i*4+2]) | uint16(pcm[i*4+3])<<8)
		mono[i] = (float64(l) + float64(r)) / 2 / 32768.0
	}
	return mono, dec.SampleRate(), nil
}

func decodeWAV(data []byte) ([]float64, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode wav", "not a valid RIFF/WAVE file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode wav", "cannot read PCM data", err)
	}
	return intBufferToMono(buf, int(dec.BitDepth))
}

func decodeAIFF(data []byte) ([]float64, int, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode aiff", "not a valid FORM/AIFF file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode aiff", "cannot read PCM data", err)
	}
	return intBufferToMono(buf, int(dec.BitDepth))
}

func intBufferToMono(buf *goaudio.IntBuffer, fallbackBitDepth int) ([]float64, int, error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode pcm", "decoded buffer is empty")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = fallbackBitDepth
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	interleaved := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		interleaved[i] = float64(s) / scale
	}
	return downmix(interleaved, buf.Format.NumChannels), buf.Format.SampleRate, nil
}

func decodeFLAC(data []byte) ([]float64, int, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode flac", "cannot parse flac stream", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	scale := float64(int64(1) << (info.BitsPerSample - 1))

	var mono []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
				"decode flac", "cannot parse flac frame", err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum float64
			for c := 0; c < channels && c < len(frame.Subframes); c++ {
				sum += float64(frame.Subframes[c].Samples[i])
			}
			mono = append(mono, sum/float64(channels)/scale)
		}
	}

	if len(mono) == 0 {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode flac", "flac stream contains no audio frames")
	}
	return mono, int(info.SampleRate), nil
}

func decodeOGG(data []byte) ([]float64, int, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, 0, platformerrors.Wrap(platformerrors.KindDecode,
			"decode ogg", "cannot decode ogg/vorbis stream", err)
	}
	if len(samples) == 0 {
		return nil, 0, platformerrors.New(platformerrors.KindDecode,
			"decode ogg", "ogg stream contains no audio")
	}

	interleaved := make([]float64, len(samples))
	for i, s := range samples {
		interleaved[i] = float64(s)
	}
	return downmix(interleaved, format.Channels), format.SampleRate, nil
}
