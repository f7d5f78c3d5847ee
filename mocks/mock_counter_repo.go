package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCounterRepo is a mock implementation of port.CounterRepository.
type MockCounterRepo struct {
	mock.Mock
}

func (m *MockCounterRepo) AllocateNext(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepo) Current(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
