package service

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/domain"
	"billsight/internal/port"
)

// OCROutput describes persisted OCR text.
type OCROutput struct {
	OutputKey string
	LineCount int
}

// OCRService defines the image text extraction contract.
type OCRService interface {
	Extract(ctx context.Context, ref domain.ObjectRef) (*OCROutput, error)
}

// OCRConfig holds settings for the OCR service.
type OCRConfig struct {
	// Bucket is used only when the event carries no bucket.
	Bucket string
	// RequiredExtension rejects other object names when set (case-insensitive).
	RequiredExtension string
	OutputPrefix      string
	KeyPolicy         domain.KeyPolicy
	NewSuffix         func() string
}

type ocrService struct {
	detector port.TextDetector
	storage  port.ObjectStorage
	cfg      OCRConfig
	logger   *zap.Logger
}

// NewOCRService creates a new OCRService implementation.
func NewOCRService(detector port.TextDetector, storage port.ObjectStorage, cfg OCRConfig, logger *zap.Logger) OCRService {
	if cfg.NewSuffix == nil {
		cfg.NewSuffix = randomSuffix
	}
	if cfg.KeyPolicy == "" {
		cfg.KeyPolicy = domain.KeyPolicyFixed
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ocrService{
		detector: detector,
		storage:  storage,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *ocrService) Extract(ctx context.Context, ref domain.ObjectRef) (*OCROutput, error) {
	if ref.Key == "" {
		return nil, domain.ErrMissingObjectKey
	}
	if ext := s.cfg.RequiredExtension; ext != "" && !strings.HasSuffix(strings.ToLower(ref.Key), strings.ToLower(ext)) {
		return nil, eris.Wrapf(domain.ErrUnsupportedFileType, "%s is not a %s file", ref.Key, ext)
	}
	bucket := ref.Bucket
	if bucket == "" {
		bucket = s.cfg.Bucket
	}

	s.logger.Info("detecting text", zap.String("bucket", bucket), zap.String("key", ref.Key))

	blocks, err := s.detector.DetectText(ctx, bucket, ref.Key)
	if err != nil {
		return nil, eris.Wrapf(err, "detecting text in %s", ref.Key)
	}

	lines := LineText(blocks)
	s.logger.Debug("extracted text", zap.Strings("lines", lines))

	outputKey := OCRTextKey(s.cfg.KeyPolicy, s.cfg.OutputPrefix, ref.Key, s.cfg.NewSuffix())
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         outputKey,
		Body:        strings.NewReader(strings.Join(lines, "\n")),
		ContentType: "text/plain",
	}); err != nil {
		return nil, eris.Wrapf(err, "saving extracted text to %s", outputKey)
	}

	s.logger.Info("text saved", zap.String("output_key", outputKey), zap.Int("lines", len(lines)))

	return &OCROutput{OutputKey: outputKey, LineCount: len(lines)}, nil
}

// LineText returns the text of LINE blocks in their original order.
func LineText(blocks []domain.TextBlock) []string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockType == domain.BlockTypeLine {
			lines = append(lines, b.Text)
		}
	}
	return lines
}
