package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// MockPurchaseRepo is a mock implementation of port.PurchaseRepository.
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) Create(ctx context.Context, bill *domain.PurchaseBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockPurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.PurchaseBill, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseBill), args.Int(1), args.Error(2)
}
