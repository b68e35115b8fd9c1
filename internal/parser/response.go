package parser

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"billsight/internal/domain"
)

// DecodeResponse validates a raw model response body and returns it unmodified.
// A body that is not JSON wraps domain.ErrInvalidModelOutput.
func DecodeResponse(model string, body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, eris.Wrapf(domain.ErrInvalidModelOutput, "%s: %s", model, truncate(string(body), 200))
	}
	return json.RawMessage(body), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
