package parser

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"billsight/internal/domain"
)

// ThrottlingError indicates the inference service rejected a call because the
// caller exceeded its request rate.
type ThrottlingError struct {
	Err      error
	Provider string
}

func (e *ThrottlingError) Error() string {
	return fmt.Sprintf("%s throttled: %v", e.Provider, e.Err)
}

func (e *ThrottlingError) Unwrap() error {
	return e.Err
}

// NewThrottlingError creates a ThrottlingError.
func NewThrottlingError(provider string, err error) *ThrottlingError {
	return &ThrottlingError{Err: err, Provider: provider}
}

// IsThrottling reports whether err (or any error in its chain) signals throttling.
func IsThrottling(err error) bool {
	if err == nil {
		return false
	}
	var te *ThrottlingError
	if errors.As(err, &te) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ThrottlingException"
	}
	return false
}

// Classify maps the result of one attempt onto an Outcome.
func Classify(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case IsThrottling(err):
		return domain.OutcomeRetryableFailure
	default:
		return domain.OutcomeTerminalFailure
	}
}
