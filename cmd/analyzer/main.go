package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/handler"
	"billsight/internal/inference/bedrock"
	"billsight/internal/middleware"
	"billsight/internal/parser"
	_ "billsight/internal/parser/claude"
	_ "billsight/internal/parser/titan"
	"billsight/internal/service"
	s3storage "billsight/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failed to load config")
	}

	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		return eris.Wrap(err, "failed to init logger")
	}
	defer func() { _ = logger.Sync() }()

	// Initialize AWS clients
	storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return eris.Wrap(err, "failed to initialize S3 client")
	}
	runtime, err := bedrock.NewRuntimeClient(ctx, &cfg.Bedrock)
	if err != nil {
		return eris.Wrap(err, "failed to initialize Bedrock client")
	}

	// Initialize parser
	base, err := parser.NewParser(&cfg.Bedrock, runtime)
	if err != nil {
		return eris.Wrap(err, "failed to initialize document parser")
	}
	docParser := parser.NewRetryingParser(base, parser.RetryConfig{
		MaxAttempts: cfg.Bedrock.MaxAttempts,
		Backoff: parser.Backoff{
			Unit:   cfg.Bedrock.BackoffUnit,
			Linear: cfg.Bedrock.LinearTerm(),
		},
	}, logger)

	analysisSvc := service.NewAnalysisService(storage, docParser, service.AnalysisConfig{
		Bucket:    cfg.S3.Bucket,
		KeyPolicy: domain.ParseKeyPolicy(cfg.Analysis.KeyPolicy, domain.KeyPolicyUnique),
	}, logger)
	analysisH := handler.NewAnalysisHandler(analysisSvc, logger)

	logger.Info("analyzer starting",
		zap.String("backend", cfg.Bedrock.Backend),
		zap.String("bucket", cfg.S3.Bucket),
	)
	lambda.Start(middleware.Logger(logger, "analyzer", analysisH.Handle))
	return nil
}
