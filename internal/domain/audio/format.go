package audio

import "bytes"

// Format identifies the container/codec of an encoded audio payload.
type Format string

const (
	FormatMP3     Format = "mp3"
	FormatOGG     Format = "ogg"
	FormatWAV     Format = "wav"
	FormatFLAC    Format = "flac"
	FormatAIFF    Format = "aiff"
	FormatUnknown Format = "unknown"
)

// DetectFormat classifies a payload by its magic-byte prefix. Payloads
// shorter than 12 bytes cannot hold any of the recognized headers.
func DetectFormat(data []byte) Format {
	if len(data) < 12 {
		return FormatUnknown
	}

	switch {
	case bytes.HasPrefix(data, []byte("ID3")),
		bytes.HasPrefix(data, []byte{0xFF, 0xFB}),
		bytes.HasPrefix(data, []byte{0xFF, 0xFA}):
		return FormatMP3
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOGG
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("FORM")):
		return FormatAIFF
	default:
		return FormatUnknown
	}
}
