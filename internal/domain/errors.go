package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmptyEvent          = errors.New("event contains no records")
	ErrMissingObjectKey    = errors.New("object key missing in event")
	ErrMissingFileName     = errors.New("file name is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrModelOverloaded     = errors.New("max retries reached, model is currently overloaded")
	ErrInvalidModelOutput  = errors.New("model returned a malformed response")
	ErrUnknownBackend      = errors.New("unknown model backend")
)
