package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billsight/internal/domain"
	"billsight/internal/service"
)

// MockOCRService is a mock implementation of service.OCRService.
type MockOCRService struct {
	mock.Mock
}

func (m *MockOCRService) Extract(ctx context.Context, ref domain.ObjectRef) (*service.OCROutput, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OCROutput), args.Error(1)
}
