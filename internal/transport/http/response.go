package httptransport

import "github.com/gin-gonic/gin"

// DetectionResponse is the success envelope for a voice-detection call.
type DetectionResponse struct {
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Classification  string  `json:"classification"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Explanation     string  `json:"explanation"`
}

// ErrorResponse is the envelope for every failed call.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse reports service liveness and the calibrated language set.
type HealthResponse struct {
	Status             string   `json:"status"`
	Version            string   `json:"version"`
	SupportedLanguages []string `json:"supported_languages"`
}

// RespondError writes the error envelope with the given HTTP status.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
