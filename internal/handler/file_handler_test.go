package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billsight/internal/domain"
	"billsight/internal/handler"
	"billsight/mocks"
)

func TestFileHandler_Success(t *testing.T) {
	svc := new(mocks.MockFileService)
	h := handler.NewFileHandler(svc, nil)

	svc.On("GetUploadURL", mock.Anything, "bill.txt").Return("https://signed.example/bill.txt", nil)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"file_name": "bill.txt"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://signed.example/bill.txt", resp.Body)
}

func TestFileHandler_MissingFileName(t *testing.T) {
	svc := new(mocks.MockFileService)
	h := handler.NewFileHandler(svc, nil)

	svc.On("GetUploadURL", mock.Anything, "").Return("", domain.ErrMissingFileName)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Missing file_name parameter", resp.Body)
}

func TestFileHandler_SigningError(t *testing.T) {
	svc := new(mocks.MockFileService)
	h := handler.NewFileHandler(svc, nil)

	svc.On("GetUploadURL", mock.Anything, "bill.txt").Return("", eris.New("s3 presign"))

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"file_name": "bill.txt"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error generating presigned URL", resp.Body)
}
