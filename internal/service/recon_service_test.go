package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
	"github.com/bitukupraveen/multi-billing-sub000/mocks"
)

func TestReconService_Reconcile_ByUpload(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	svc := service.NewReconService(orderRepo, settlementRepo)

	uploadID := uuid.New()
	orders := []domain.Order{
		{OrderID: "OD1", OrderItemID: "OI1", SKU: "A"},
		{OrderID: "OD2", OrderItemID: "OI2", SKU: "B"},
		{OrderID: "OD3", OrderItemID: "OI3", SKU: "C"},
	}
	rows := []domain.SettlementRow{
		// Settles OD1 via the item-level key only.
		{UploadID: uploadID, OrderItemID: "OI1"},
		// Settles OD2 via the order-level key only.
		{UploadID: uploadID, OrderID: "OD2"},
		// Matches nothing locally.
		{UploadID: uploadID, OrderID: "OD9", OrderItemID: "OI9"},
	}

	orderRepo.On("ListAllByChannel", mock.Anything, domain.ChannelFlipkart).Return(orders, nil)
	settlementRepo.On("ListByUpload", mock.Anything, uploadID).Return(rows, nil)

	result, err := svc.Reconcile(context.Background(), service.ReconInput{
		Channel:  domain.ChannelFlipkart,
		UploadID: &uploadID,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.OrdersTotal)
	assert.Equal(t, 3, result.SettlementTotal)
	require.Len(t, result.MissingInSettlement, 1)
	assert.Equal(t, "OD3", result.MissingInSettlement[0].OrderID)
	require.Len(t, result.MissingInBooks, 1)
	assert.Equal(t, "OD9", result.MissingInBooks[0].OrderID)
}

func TestReconService_Reconcile_ByReportType(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	svc := service.NewReconService(orderRepo, settlementRepo)

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orderRepo.On("ListAllByChannel", mock.Anything, domain.ChannelShopify).Return([]domain.Order{}, nil)
	settlementRepo.On("ListByReportType", mock.Anything, domain.ReportTypeGST, since).Return([]domain.SettlementRow{}, nil)

	result, err := svc.Reconcile(context.Background(), service.ReconInput{
		Channel:    domain.ChannelShopify,
		ReportType: domain.ReportTypeGST,
		Since:      since,
	})
	require.NoError(t, err)
	assert.Empty(t, result.MissingInSettlement)
	assert.Empty(t, result.MissingInBooks)
}

func TestReconService_Reconcile_InputValidation(t *testing.T) {
	svc := service.NewReconService(new(mocks.MockOrderRepo), new(mocks.MockSettlementRepo))

	_, err := svc.Reconcile(context.Background(), service.ReconInput{Channel: "ebay"})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)

	// Without an upload id a report type is required.
	_, err = svc.Reconcile(context.Background(), service.ReconInput{Channel: domain.ChannelOffline})
	assert.ErrorIs(t, err, domain.ErrReconciliationInput)
}

func TestReconService_ExportCSV(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	svc := service.NewReconService(orderRepo, settlementRepo)

	uploadID := uuid.New()
	orders := []domain.Order{
		{OrderID: "OD3", OrderItemID: "OI3", SKU: "C", Quantity: 1, Amount: 99.5, Status: domain.OrderStatusDelivered, Channel: domain.ChannelFlipkart},
	}
	rows := []domain.SettlementRow{
		{UploadID: uploadID, ReportType: domain.ReportTypeOrder, RowIndex: 4, OrderID: "OD9"},
	}
	orderRepo.On("ListAllByChannel", mock.Anything, domain.ChannelFlipkart).Return(orders, nil)
	settlementRepo.On("ListByUpload", mock.Anything, uploadID).Return(rows, nil)

	var buf bytes.Buffer
	filename, err := svc.ExportCSV(context.Background(), service.ReconInput{
		Channel:  domain.ChannelFlipkart,
		UploadID: &uploadID,
	}, &buf)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "reconciliation_flipkart_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	out := buf.String()
	assert.Contains(t, out, "Discrepancy,Order ID,Order Item ID")
	assert.Contains(t, out, "missing_in_settlement,OD3,OI3,C,1,99.50")
	assert.Contains(t, out, "missing_in_books,OD9")
}
