package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billsight/internal/domain"
)

// MockTextDetector is a mock implementation of port.TextDetector.
type MockTextDetector struct {
	mock.Mock
}

func (m *MockTextDetector) DetectText(ctx context.Context, bucket, key string) ([]domain.TextBlock, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TextBlock), args.Error(1)
}
