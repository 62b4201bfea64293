package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/decoder"
	"github.com/Jedelmann90/pii-detection-tool/internal/usecase"
)

// Upload validation errors surfaced before any analysis runs
var (
	ErrNoFileProvided      = errors.New("no csv file provided")
	ErrUnsupportedFileType = errors.New("only csv files are supported")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapAnalysisError maps usecase and upload errors to HTTP error responses.
// Per-column failures never reach here; they are reported inside the
// analysis payload with the ERROR classification.
func MapAnalysisError(err error) ErrorResponse {
	switch {
	case errors.Is(err, ErrNoFileProvided):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "no csv file provided",
		}
	case errors.Is(err, ErrUnsupportedFileType):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "only csv files are supported",
		}
	case errors.Is(err, ErrFileTooLarge):
		return ErrorResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       "PAYLOAD_TOO_LARGE",
			Message:    "file exceeds the upload size limit",
		}
	case errors.Is(err, decoder.ErrEmptyFile), errors.Is(err, decoder.ErrDuplicateHeader):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrEmptyTable):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "table contains no columns",
		}
	case errors.Is(err, usecase.ErrInvalidColumnCount):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "column count must be positive",
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "invalid request",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleAnalysisError handles an analysis error by sending the mapped
// HTTP error response.
func HandleAnalysisError(c *gin.Context, err error) {
	errResp := MapAnalysisError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
