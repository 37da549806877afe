// Package services holds the application-level orchestration between the
// transport layer and the audio analysis domain.
package services

import (
	"context"
	"math"
	"time"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/audio"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/detection"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/features"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/config"
	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/logging"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/observability"
)

// DetectionService runs the full analysis pipeline: decode the payload,
// extract the feature bundle, score it and fuse the verdict.
type DetectionService struct {
	cfg       *config.Config
	logger    *logging.Logger
	decoder   *audio.Decoder
	extractor *features.Extractor
	detector  *detection.Detector
}

// AnalyzeRequest carries one decoded-from-transport detection job.
type AnalyzeRequest struct {
	Language string
	Audio    []byte
}

// AnalyzeResult is the presentation-ready verdict.
type AnalyzeResult struct {
	Language       string
	Classification detection.Classification
	// Confidence is rounded to two decimals for presentation.
	Confidence  float64
	Explanation string
}

// NewDetectionService wires the pipeline stages from the runtime config.
func NewDetectionService(cfg *config.Config, logger *logging.Logger) *DetectionService {
	return &DetectionService{
		cfg:    cfg,
		logger: logger,
		decoder: audio.NewDecoder(audio.Options{
			SampleRate:      cfg.Audio.SampleRate,
			MaxDuration:     cfg.Audio.MaxDuration,
			MinPayloadBytes: cfg.Audio.MinPayloadBytes,
		}),
		extractor: features.NewExtractor(),
		detector:  detection.NewDetector(cfg.Detection.ConfidenceThreshold),
	}
}

// Analyze runs one payload through the pipeline. All failures carry a
// platform error kind so the transport layer can map them to a status.
func (s *DetectionService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if !s.cfg.Detection.IsLanguageSupported(req.Language) {
		return nil, platformerrors.Newf(platformerrors.KindTransport,
			"analyze voice", "unsupported language %q", req.Language)
	}

	start := time.Now()
	ctx, spanEnd := observability.StartSpan(ctx, "detection.service", "analyze")

	wave, err := s.decodePayload(ctx, req.Audio)
	if err != nil {
		spanEnd(err)
		return nil, err
	}

	bundle, err := s.extractFeatures(ctx, wave)
	if err != nil {
		spanEnd(err)
		return nil, err
	}

	result := s.detector.Detect(bundle, detection.Language(req.Language))
	spanEnd(nil)

	s.logger.InfoTag("detection", "%s verdict in %s (language=%s confidence=%.2f)",
		result.Classification, time.Since(start).Round(time.Millisecond),
		req.Language, result.Confidence)
	observability.RecordMetric(ctx, "detection.requests", 1, map[string]string{
		"component":      "detection.service",
		"language":       req.Language,
		"classification": string(result.Classification),
	})

	return &AnalyzeResult{
		Language:       req.Language,
		Classification: result.Classification,
		Confidence:     math.Round(result.Confidence*100) / 100,
		Explanation:    result.Explanation,
	}, nil
}

func (s *DetectionService) decodePayload(ctx context.Context, payload []byte) (*audio.Waveform, error) {
	_, spanEnd := observability.StartSpan(ctx, "detection.service", "decode")
	wave, err := s.decoder.Decode(payload)
	spanEnd(err)
	if err != nil {
		s.logger.WarnTag("decode", "payload rejected: %v", err)
		return nil, err
	}
	s.logger.DebugTag("decode", "decoded %d bytes to %.2fs @ %dHz",
		len(payload), wave.Duration(), wave.SampleRate)
	return wave, nil
}

func (s *DetectionService) extractFeatures(ctx context.Context, wave *audio.Waveform) (*features.Bundle, error) {
	_, spanEnd := observability.StartSpan(ctx, "detection.service", "extract")
	bundle, err := s.extractor.Extract(wave)
	spanEnd(err)
	if err != nil {
		s.logger.WarnTag("features", "extraction failed: %v", err)
		return nil, err
	}
	return bundle, nil
}
