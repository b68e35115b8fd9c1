package service

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/port"
)

// DefaultPresignExpiry is the upload URL lifetime in seconds.
const DefaultPresignExpiry = 3600

// FileService defines the upload URL contract.
type FileService interface {
	GetUploadURL(ctx context.Context, fileName string) (string, error)
}

type fileService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
	logger  *zap.Logger
}

// NewFileService creates a new FileService implementation.
func NewFileService(storage port.ObjectStorage, cfg *config.S3Config, logger *zap.Logger) FileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileService{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetUploadURL returns a time-limited URL permitting a direct PUT of fileName
// into the configured bucket.
func (s *fileService) GetUploadURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", domain.ErrMissingFileName
	}
	expiry := s.cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	url, err := s.storage.GetPresignedUploadURL(ctx, s.cfg.Bucket, fileName, expiry)
	if err != nil {
		return "", eris.Wrapf(err, "generating presigned URL for %s", fileName)
	}
	s.logger.Info("presigned upload url issued", zap.String("key", fileName), zap.Int64("expiry_secs", expiry))
	return url, nil
}
