package httptransport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/app/services"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/config"
	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/logging"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// DetectionRequest is the voice-detection request body. AudioFormat is
// advisory only: the decoder always sniffs the real container from the
// payload bytes.
type DetectionRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

// Service exposes the detection pipeline over HTTP.
type Service struct {
	cfg      *config.Config
	logger   *logging.Logger
	detector *services.DetectionService
}

// NewService builds the HTTP-facing detection service.
func NewService(cfg *config.Config, logger *logging.Logger, detector *services.DetectionService) *Service {
	return &Service{cfg: cfg, logger: logger, detector: detector}
}

// Register mounts the health probe on the open group and the detection
// endpoint on the API-key-secured group.
func (s *Service) Register(r *Router) {
	r.API.GET("/health", s.handleHealth)
	r.Secured.POST("/voice-detection", s.handleVoiceDetection)
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:             "healthy",
		Version:            Version,
		SupportedLanguages: s.cfg.Detection.SupportedLanguages,
	})
}

func (s *Service) handleVoiceDetection(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unable to read request body")
		return
	}

	var req DetectionRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Language == "" {
		RespondError(c, http.StatusBadRequest, "language is required")
		return
	}
	if !s.cfg.Detection.IsLanguageSupported(req.Language) {
		RespondError(c, http.StatusBadRequest, fmt.Sprintf("unsupported language: %s", req.Language))
		return
	}
	if req.AudioBase64 == "" {
		RespondError(c, http.StatusBadRequest, "audioBase64 is required")
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid base64 audio data")
		return
	}

	result, err := s.detector.Analyze(c.Request.Context(), services.AnalyzeRequest{
		Language: req.Language,
		Audio:    payload,
	})
	if err != nil {
		c.Error(err)
		status, message := statusForError(err)
		RespondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, DetectionResponse{
		Status:          "success",
		Language:        result.Language,
		Classification:  string(result.Classification),
		ConfidenceScore: result.Confidence,
		Explanation:     result.Explanation,
	})
}

// statusForError maps pipeline error kinds onto HTTP statuses. Decode and
// validation problems are the caller's fault; analysis failures mean the
// payload decoded but could not be scored.
func statusForError(err error) (int, string) {
	var typed *platformerrors.Error
	if !errors.As(err, &typed) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch typed.Kind {
	case platformerrors.KindDecode, platformerrors.KindTransport:
		return http.StatusBadRequest, typed.Message
	case platformerrors.KindAnalysis:
		return http.StatusUnprocessableEntity, typed.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
