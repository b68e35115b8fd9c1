package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billsight/internal/domain"
	"billsight/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, ref domain.ObjectRef) (*service.AnalysisOutput, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisOutput), args.Error(1)
}
