package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rotisserie/eris"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/handler"
	"billsight/internal/middleware"
	"billsight/internal/ocr/textract"
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

	storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return eris.Wrap(err, "failed to initialize S3 client")
	}
	detector, err := textract.NewTextractClient(ctx, &cfg.Textract)
	if err != nil {
		return eris.Wrap(err, "failed to initialize Textract client")
	}

	ocrSvc := service.NewOCRService(detector, storage, service.OCRConfig{
		Bucket:            cfg.S3.Bucket,
		RequiredExtension: cfg.Textract.RequiredExtension,
		OutputPrefix:      cfg.Textract.OutputPrefix,
		KeyPolicy:         domain.ParseKeyPolicy(cfg.Textract.KeyPolicy, domain.KeyPolicyFixed),
	}, logger)
	ocrH := handler.NewOCRHandler(ocrSvc, logger)

	lambda.Start(middleware.Logger(logger, "ocr", ocrH.Handle))
	return nil
}
