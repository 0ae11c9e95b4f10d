package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TraceIDKey is the gin context key holding the request trace id.
const TraceIDKey = "trace_id"

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
	})
}

// statusFor classifies service errors. Anything unknown is a 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrExperienceNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrItineraryItemNotFound),
		errors.Is(err, ErrSuggestionDayNotFound),
		errors.Is(err, ErrSuggestionActivity),
		errors.Is(err, ErrCheckInNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidDay),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidPhoto):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrSelectionIncomplete),
		errors.Is(err, ErrNoCategorySelected),
		errors.Is(err, ErrNoDraft),
		errors.Is(err, ErrSubmitPending):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err))
		return http.StatusInternalServerError, "Internal server error"
	default:
		zap.L().Error("unknown error", zap.Error(err))
		return http.StatusInternalServerError, "Internal server error"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := statusFor(err)
	RespondError(c, code, message)
}
