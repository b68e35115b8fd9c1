package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billsight/internal/domain"
	"billsight/internal/handler"
	"billsight/internal/service"
	"billsight/mocks"
)

func TestOCRHandler_Success(t *testing.T) {
	svc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(svc, nil)

	svc.On("Extract", mock.Anything, domain.ObjectRef{Bucket: "scans", Key: "bill 1.jpg"}).
		Return(&service.OCROutput{OutputKey: "output/bill 1.txt", LineCount: 3}, nil)

	resp, err := h.Handle(context.Background(), s3Event("scans", "bill%201.jpg"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Document processed successfully!", resp.Body)
}

func TestOCRHandler_UnsupportedFile(t *testing.T) {
	svc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(svc, nil)

	svc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, eris.Wrap(domain.ErrUnsupportedFileType, "bill.png is not a .jpg file"))

	resp, err := h.Handle(context.Background(), s3Event("scans", "bill.png"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Unsupported file type", resp.Body)
}

func TestOCRHandler_NotFound(t *testing.T) {
	svc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(svc, nil)

	svc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, eris.Wrap(domain.ErrNotFound, "detecting text"))

	resp, err := h.Handle(context.Background(), s3Event("scans", "bill.jpg"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
