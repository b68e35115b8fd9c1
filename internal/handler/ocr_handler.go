package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"billsight/internal/middleware"
	"billsight/internal/service"
)

// OCRHandler runs text detection for image upload notifications.
type OCRHandler struct {
	ocrService service.OCRService
	logger     *zap.Logger
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(ocrService service.OCRService, logger *zap.Logger) *OCRHandler {
	return &OCRHandler{ocrService: ocrService, logger: logger}
}

// Handle processes the first record of evt.
func (h *OCRHandler) Handle(ctx context.Context, evt events.S3Event) (resp Response, err error) {
	defer recoverPanic(ctx, h.logger, "Error processing the document!", func(status int, msg string) {
		resp, err = Response{StatusCode: status, Body: msg}, nil
	})

	ref, err := FirstObject(evt)
	if err != nil {
		status, msg := HandleError(ctx, h.logger, err, "Error reading event")
		return Response{StatusCode: status, Body: msg}, nil
	}

	out, err := h.ocrService.Extract(ctx, ref)
	if err != nil {
		status, msg := HandleError(ctx, h.logger, err, "Error processing the document!")
		return Response{StatusCode: status, Body: msg}, nil
	}

	middleware.LoggerFrom(ctx, h.logger).Info("document text extracted",
		zap.String("key", ref.Key),
		zap.String("output_key", out.OutputKey),
		zap.Int("lines", out.LineCount),
	)
	return RespondOK("Document processed successfully!"), nil
}
