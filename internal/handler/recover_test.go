package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsight/internal/domain"
	"billsight/internal/handler"
	"billsight/internal/service"
)

type panickingAnalysis struct{}

func (panickingAnalysis) Analyze(context.Context, domain.ObjectRef) (*service.AnalysisOutput, error) {
	panic("nil map write")
}

type panickingOCR struct{}

func (panickingOCR) Extract(context.Context, domain.ObjectRef) (*service.OCROutput, error) {
	panic("index out of range")
}

type panickingFiles struct{}

func (panickingFiles) GetUploadURL(context.Context, string) (string, error) {
	panic("nil pointer")
}

func TestAnalysisHandler_PanicBecomes500(t *testing.T) {
	h := handler.NewAnalysisHandler(panickingAnalysis{}, nil)

	resp, err := h.Handle(context.Background(), s3Event("bills", "bill.txt"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error invoking Bedrock model", resp.Body)
}

func TestOCRHandler_PanicBecomes500(t *testing.T) {
	h := handler.NewOCRHandler(panickingOCR{}, nil)

	resp, err := h.Handle(context.Background(), s3Event("scans", "bill.jpg"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error processing the document!", resp.Body)
}

func TestFileHandler_PanicBecomes500(t *testing.T) {
	h := handler.NewFileHandler(panickingFiles{}, nil)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"file_name": "bill.txt"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, resp.Body, "nil pointer")
}
