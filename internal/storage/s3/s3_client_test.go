package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsight/internal/awsutil"
	"billsight/internal/domain"
	"billsight/internal/port"
	s3storage "billsight/internal/storage/s3"
)

func newStorage(t *testing.T, h http.HandlerFunc) port.ObjectStorage {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return s3storage.NewFromConfig(awsutil.Static("us-east-1", "AKID", "SECRET"), srv.URL)
}

func TestS3Client_Download(t *testing.T) {
	storage := newStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bills/in/bill.txt", r.URL.Path)
		_, _ = w.Write([]byte("Energy Used 10 kWh"))
	})

	data, err := storage.Download(context.Background(), "bills", "in/bill.txt")

	require.NoError(t, err)
	assert.Equal(t, "Energy Used 10 kWh", string(data))
}

func TestS3Client_Download_NotFound(t *testing.T) {
	storage := newStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
	})

	_, err := storage.Download(context.Background(), "bills", "missing.txt")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestS3Client_Download_OtherError(t *testing.T) {
	storage := newStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
	})

	_, err := storage.Download(context.Background(), "bills", "bill.txt")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestS3Client_Upload(t *testing.T) {
	var gotPath, gotType string
	var gotBody []byte
	storage := newStorage(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	})

	out, err := storage.Upload(context.Background(), port.UploadInput{
		Bucket:      "bills",
		Key:         "bill_result.json",
		Body:        strings.NewReader(`{"analysis":{}}`),
		ContentType: "application/json",
	})

	require.NoError(t, err)
	assert.Equal(t, "/bills/bill_result.json", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Contains(t, string(gotBody), `{"analysis":{}}`)
	assert.Equal(t, `"abc123"`, out.ETag)
}

func TestS3Client_GetPresignedUploadURL(t *testing.T) {
	storage := s3storage.NewFromConfig(awsutil.Static("us-east-1", "AKID", "SECRET"), "")

	url, err := storage.GetPresignedUploadURL(context.Background(), "bills", "bill.txt", 3600)

	require.NoError(t, err)
	assert.Contains(t, url, "bills")
	assert.Contains(t, url, "bill.txt")
	assert.Contains(t, url, "X-Amz-Expires=3600")
	assert.Contains(t, url, "X-Amz-Signature=")
}
