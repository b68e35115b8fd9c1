package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billsight/internal/port"
)

// MockModelRuntime is a mock implementation of port.ModelRuntime.
type MockModelRuntime struct {
	mock.Mock
}

func (m *MockModelRuntime) InvokeModel(ctx context.Context, input port.InvokeInput) (*port.InvokeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.InvokeOutput), args.Error(1)
}
