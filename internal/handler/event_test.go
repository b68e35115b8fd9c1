package handler_test

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsight/internal/domain"
	"billsight/internal/handler"
)

func TestFirstObject_DecodesKey(t *testing.T) {
	ref, err := handler.FirstObject(s3Event("bills", "uploads/Bill+March%282024%29.txt"))

	require.NoError(t, err)
	assert.Equal(t, "bills", ref.Bucket)
	assert.Equal(t, "uploads/Bill March(2024).txt", ref.Key)
}

func TestFirstObject_OnlyFirstRecord(t *testing.T) {
	evt := s3Event("bills", "first.txt")
	evt.Records = append(evt.Records, s3Event("bills", "second.txt").Records...)

	ref, err := handler.FirstObject(evt)

	require.NoError(t, err)
	assert.Equal(t, "first.txt", ref.Key)
}

func TestFirstObject_NoRecords(t *testing.T) {
	_, err := handler.FirstObject(events.S3Event{})

	assert.ErrorIs(t, err, domain.ErrEmptyEvent)
}

func TestFirstObject_BadEscape(t *testing.T) {
	_, err := handler.FirstObject(s3Event("bills", "bad%zz.txt"))

	assert.Error(t, err)
}

func TestMapDomainError(t *testing.T) {
	status, _ := handler.MapDomainError(domain.ErrNotFound)
	assert.Equal(t, 404, status)

	status, msg := handler.MapDomainError(domain.ErrModelOverloaded)
	assert.Equal(t, 500, status)
	assert.NotEmpty(t, msg)

	status, msg = handler.MapDomainError(assert.AnError)
	assert.Equal(t, 500, status)
	assert.Empty(t, msg)
}
