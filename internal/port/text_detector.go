package port

import (
	"context"

	"billsight/internal/domain"
)

// TextDetector abstracts OCR over an image held in object storage.
type TextDetector interface {
	DetectText(ctx context.Context, bucket, key string) ([]domain.TextBlock, error)
}
