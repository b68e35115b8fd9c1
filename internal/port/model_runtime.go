package port

import "context"

// InvokeInput is a single raw model invocation.
type InvokeInput struct {
	ModelID     string
	ContentType string
	Accept      string
	Body        []byte
}

// InvokeOutput is the raw model response.
type InvokeOutput struct {
	Body        []byte
	ContentType string
}

// ModelRuntime abstracts the inference endpoint. Throttling is reported as an
// error satisfying parser.IsThrottling.
type ModelRuntime interface {
	InvokeModel(ctx context.Context, input InvokeInput) (*InvokeOutput, error)
}
