package port

import (
	"context"
	"encoding/json"
)

// ParseInput carries the document text submitted to the model.
type ParseInput struct {
	DocumentText string
	DocumentKey  string
}

// ParseOutput contains the model's response, passed through unmodified.
type ParseOutput struct {
	Response   json.RawMessage
	ModelUsed  string
	PromptUsed string
	Attempts   int
}

// DocumentParser abstracts LLM-based document analysis.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
