package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"billsight/internal/middleware"
	"billsight/internal/service"
)

// AnalysisHandler runs document analysis for S3 upload notifications.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, logger: logger}
}

// Handle processes the first record of evt. Failures are reported through the
// response status; the returned error is always nil.
func (h *AnalysisHandler) Handle(ctx context.Context, evt events.S3Event) (resp Response, err error) {
	defer recoverPanic(ctx, h.logger, "Error invoking Bedrock model", func(status int, msg string) {
		resp, err = Response{StatusCode: status, Body: msg}, nil
	})

	ref, err := FirstObject(evt)
	if err != nil {
		status, msg := HandleError(ctx, h.logger, err, "Error reading event")
		return Response{StatusCode: status, Body: msg}, nil
	}

	out, err := h.analysisService.Analyze(ctx, ref)
	if err != nil {
		status, msg := HandleError(ctx, h.logger, err, "Error invoking Bedrock model")
		if status == http.StatusNotFound {
			msg += ": " + ref.Key
		}
		return Response{StatusCode: status, Body: msg}, nil
	}

	middleware.LoggerFrom(ctx, h.logger).Info("document analyzed",
		zap.String("key", ref.Key),
		zap.String("output_key", out.OutputKey),
	)
	return RespondOK("Analysis complete and result saved to S3."), nil
}
