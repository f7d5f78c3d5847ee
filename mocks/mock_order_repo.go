package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// MockOrderRepo is a mock implementation of port.OrderRepository.
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) ExistsByOrderItemID(ctx context.Context, channel domain.Channel, orderItemID string) (bool, error) {
	args := m.Called(ctx, channel, orderItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) ListByChannel(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, channel, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepo) ListAllByChannel(ctx context.Context, channel domain.Channel) ([]domain.Order, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockSettlementRepo is a mock implementation of port.SettlementRepository.
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) Create(ctx context.Context, row *domain.SettlementRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockSettlementRepo) ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]domain.SettlementRow, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementRow), args.Error(1)
}

func (m *MockSettlementRepo) ListByReportType(ctx context.Context, reportType domain.ReportType, since time.Time) ([]domain.SettlementRow, error) {
	args := m.Called(ctx, reportType, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementRow), args.Error(1)
}
