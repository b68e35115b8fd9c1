package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"billsight/internal/service"
)

// FileHandler issues presigned upload URLs for API Gateway requests.
type FileHandler struct {
	fileService service.FileService
	logger      *zap.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{fileService: fileService, logger: logger}
}

// Handle reads the file_name query parameter and responds with the URL as the body.
func (h *FileHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer recoverPanic(ctx, h.logger, "Error generating presigned URL", func(status int, msg string) {
		resp, err = proxyResponse(status, msg), nil
	})

	fileName := req.QueryStringParameters["file_name"]

	url, err := h.fileService.GetUploadURL(ctx, fileName)
	if err != nil {
		status, msg := HandleError(ctx, h.logger, err, "Error generating presigned URL")
		return proxyResponse(status, msg), nil
	}
	return proxyResponse(http.StatusOK, url), nil
}

func proxyResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       body,
	}
}
