package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/followup"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

// statusFor maps service errors onto HTTP status codes and error types.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAlarmNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidAlarm),
		errors.Is(err, deeplink.ErrInvalidLink),
		errors.Is(err, deeplink.ErrMissingID),
		errors.Is(err, deeplink.ErrInvalidAtArg),
		errors.Is(err, followup.ErrMissingRingInstance),
		errors.Is(err, followup.ErrUnknownEventKind):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNativeCall):
		return http.StatusBadGateway, "scheduler_error"
	default:
		return http.StatusInternalServerError, "processing_error"
	}
}

func respondServiceError(c *gin.Context, event string, err error) {
	status, errType := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("event", event),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	} else {
		slog.WarnContext(c.Request.Context(), "request rejected",
			slog.String("event", event),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	respondError(c, status, errType, err.Error())
}
