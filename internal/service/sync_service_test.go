package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
	"github.com/bitukupraveen/multi-billing-sub000/mocks"
)

func flipkartSource(orders []domain.Order, err error) *mocks.MockOrderSource {
	src := new(mocks.MockOrderSource)
	src.On("Channel").Return(domain.ChannelFlipkart)
	src.On("FetchOrders", mock.Anything, mock.AnythingOfType("time.Time")).Return(orders, err)
	return src
}

func TestSyncService_Sync_DedupesByOrderItemID(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepo)
	fetched := []domain.Order{
		{Channel: domain.ChannelFlipkart, OrderID: "OD1", OrderItemID: "OI1"},
		{Channel: domain.ChannelFlipkart, OrderID: "OD2", OrderItemID: "OI2"},
		{Channel: domain.ChannelFlipkart, OrderID: "OD3", OrderItemID: ""},
	}
	svc := service.NewSyncService(orderRepo, flipkartSource(fetched, nil))

	orderRepo.On("ExistsByOrderItemID", mock.Anything, domain.ChannelFlipkart, "OI1").Return(true, nil)
	orderRepo.On("ExistsByOrderItemID", mock.Anything, domain.ChannelFlipkart, "OI2").Return(false, nil)
	orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.OrderItemID == "OI2"
	})).Return(nil)

	report, err := svc.Sync(context.Background(), domain.ChannelFlipkart, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Skipped)
	orderRepo.AssertExpectations(t)
}

func TestSyncService_Sync_UnknownChannel(t *testing.T) {
	svc := service.NewSyncService(new(mocks.MockOrderRepo))

	_, err := svc.Sync(context.Background(), domain.ChannelShopify, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestSyncService_Sync_FetchFailure(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepo)
	svc := service.NewSyncService(orderRepo, flipkartSource(nil, domain.ErrMarketplaceSync))

	_, err := svc.Sync(context.Background(), domain.ChannelFlipkart, time.Now())
	assert.ErrorIs(t, err, domain.ErrMarketplaceSync)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSyncService_Channels(t *testing.T) {
	src := new(mocks.MockOrderSource)
	src.On("Channel").Return(domain.ChannelShopify)
	svc := service.NewSyncService(new(mocks.MockOrderRepo), src)

	assert.Equal(t, []domain.Channel{domain.ChannelShopify}, svc.Channels())
}
