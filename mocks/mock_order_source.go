package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// MockOrderSource is a mock implementation of port.OrderSource.
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) Channel() domain.Channel {
	args := m.Called()
	return args.Get(0).(domain.Channel)
}

func (m *MockOrderSource) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
