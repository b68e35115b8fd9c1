package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/domain"
	"billsight/internal/middleware"
)

// Response is the status/body envelope returned by the S3-triggered functions.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RespondOK returns a 200 response.
func RespondOK(body string) Response {
	return Response{StatusCode: http.StatusOK, Body: body}
}

// MapDomainError translates domain errors to a status code and a caller-facing
// message. An empty message means the caller's generic message applies.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "File not found"
	case errors.Is(err, domain.ErrModelOverloaded):
		return http.StatusInternalServerError, "Max retries reached. Bedrock is currently overloaded."
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusInternalServerError, "Unsupported file type"
	case errors.Is(err, domain.ErrMissingFileName):
		return http.StatusInternalServerError, "Missing file_name parameter"
	default:
		return http.StatusInternalServerError, ""
	}
}

// HandleError logs err with its full chain and stack and returns the mapped
// status and message. Details never leave the log.
func HandleError(ctx context.Context, logger *zap.Logger, err error, fallbackMsg string) (int, string) {
	status, msg := MapDomainError(err)
	if msg == "" {
		msg = fallbackMsg
	}

	log := middleware.LoggerFrom(ctx, logger)
	log.Error("invocation failed",
		zap.Int("status", status),
		zap.String("error_type", fmt.Sprintf("%T", rootCause(err))),
		zap.String("error_message", err.Error()),
		zap.Any("error_detail", eris.ToJSON(err, true)),
	)
	return status, msg
}

// recoverPanic converts a panic in the deferring handler into a failure
// response reported through respond. It must be deferred directly.
func recoverPanic(ctx context.Context, logger *zap.Logger, fallbackMsg string, respond func(status int, msg string)) {
	if r := recover(); r != nil {
		status, msg := HandleError(ctx, logger, eris.Errorf("panic: %v", r), fallbackMsg)
		respond(status, msg)
	}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
