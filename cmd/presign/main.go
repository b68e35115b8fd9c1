package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rotisserie/eris"

	"billsight/internal/config"
	"billsight/internal/handler"
	"billsight/internal/middleware"
	"billsight/internal/service"
	s3storage "billsight/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failed to load config")
	}

	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		return eris.Wrap(err, "failed to init logger")
	}
	defer func() { _ = logger.Sync() }()

	storage, err := s3storage.NewS3Client(context.Background(), &cfg.S3)
	if err != nil {
		return eris.Wrap(err, "failed to initialize S3 client")
	}

	fileSvc := service.NewFileService(storage, &cfg.S3, logger)
	fileH := handler.NewFileHandler(fileSvc, logger)

	lambda.Start(middleware.Logger(logger, "presign", fileH.Handle))
	return nil
}
