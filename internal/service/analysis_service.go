package service

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/domain"
	"billsight/internal/extract"
	"billsight/internal/port"
)

// AnalysisOutput describes a persisted analysis.
type AnalysisOutput struct {
	OutputKey string
	ModelUsed string
	Attempts  int
	Fields    domain.ExtractedFields
}

// AnalysisService defines the document analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, ref domain.ObjectRef) (*AnalysisOutput, error)
}

// AnalysisConfig holds settings for the analysis service.
type AnalysisConfig struct {
	// Bucket is read from and written to. When empty the event's bucket is used.
	Bucket    string
	KeyPolicy domain.KeyPolicy
	// NewSuffix generates unique key suffixes. Defaults to a random UUID hex.
	NewSuffix func() string
}

type analysisService struct {
	storage port.ObjectStorage
	parser  port.DocumentParser
	cfg     AnalysisConfig
	logger  *zap.Logger
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(storage port.ObjectStorage, parser port.DocumentParser, cfg AnalysisConfig, logger *zap.Logger) AnalysisService {
	if cfg.NewSuffix == nil {
		cfg.NewSuffix = randomSuffix
	}
	if cfg.KeyPolicy == "" {
		cfg.KeyPolicy = domain.KeyPolicyUnique
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analysisService{
		storage: storage,
		parser:  parser,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze reads the document, extracts fields, invokes the model and writes the
// combined result. Nothing is written unless the model call succeeds.
func (s *analysisService) Analyze(ctx context.Context, ref domain.ObjectRef) (*AnalysisOutput, error) {
	if ref.Key == "" {
		return nil, domain.ErrMissingObjectKey
	}
	bucket := s.cfg.Bucket
	if bucket == "" {
		bucket = ref.Bucket
	}

	data, err := s.storage.Download(ctx, bucket, ref.Key)
	if err != nil {
		return nil, eris.Wrapf(err, "reading document %s", ref.Key)
	}
	text := string(data)

	fields := extract.Fields(text)

	out, err := s.parser.Parse(ctx, port.ParseInput{
		DocumentText: text,
		DocumentKey:  ref.Key,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "analyzing document %s", ref.Key)
	}
	if out == nil {
		return nil, eris.Wrapf(domain.ErrInvalidModelOutput, "analyzing document %s: no output", ref.Key)
	}

	payload, err := json.Marshal(domain.AnalysisResult{
		Analysis: domain.Analysis{
			ModelResponse:   out.Response,
			ExtractedFields: fields,
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "encoding analysis result")
	}

	outputKey := AnalysisResultKey(s.cfg.KeyPolicy, ref.Key, s.cfg.NewSuffix())
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         outputKey,
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
	}); err != nil {
		return nil, eris.Wrapf(err, "writing analysis result %s", outputKey)
	}

	s.logger.Info("analysis saved",
		zap.String("bucket", bucket),
		zap.String("source_key", ref.Key),
		zap.String("output_key", outputKey),
		zap.String("model", out.ModelUsed),
		zap.Int("attempts", out.Attempts),
	)

	return &AnalysisOutput{
		OutputKey: outputKey,
		ModelUsed: out.ModelUsed,
		Attempts:  out.Attempts,
		Fields:    fields,
	}, nil
}
