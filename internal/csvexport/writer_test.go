package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/csvexport"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

func TestWriter_DiscrepancyExport(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	orderedAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	uploadID := uuid.New()

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteMissingOrders([]domain.Order{
		{
			Channel:     domain.ChannelFlipkart,
			OrderID:     "OD100",
			OrderItemID: "OI100",
			SKU:         "SKU-A",
			Quantity:    2,
			Amount:      499.5,
			Status:      domain.OrderStatusShipped,
			OrderedAt:   orderedAt,
		},
	}))
	require.NoError(t, w.WriteMissingRows([]domain.SettlementRow{
		{
			UploadID:    uploadID,
			ReportType:  domain.ReportTypeGST,
			RowIndex:    3,
			OrderID:     "OD200",
			OrderItemID: "OI200",
			SKU:         "SKU-B",
			CreatedAt:   orderedAt,
		},
	}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Discrepancy", "Order ID", "Order Item ID", "SKU",
		"Quantity", "Amount", "Detail", "Recorded At",
	}, records[0])

	assert.Equal(t, []string{
		"missing_in_settlement", "OD100", "OI100", "SKU-A",
		"2", "499.50", "flipkart order, status shipped", "2026-02-10T09:30:00Z",
	}, records[1])

	assert.Equal(t, []string{
		"missing_in_books", "OD200", "OI200", "SKU-B",
		"", "", fmt.Sprintf("gst_report row 3 (upload %s)", uploadID), "2026-02-10T09:30:00Z",
	}, records[2])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flipkart", "flipkart"},
		{"my channel / test", "my_channel_test"},
		{"__already__wrapped__", "already_wrapped"},
		{"café exports!", "caf_exports"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvexport.SanitizeFilename(tt.in), "input %q", tt.in)
	}

	long := csvexport.SanitizeFilename(string(bytes.Repeat([]byte("a"), 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("shopify")
	assert.Equal(t, fmt.Sprintf("reconciliation_shopify_%s.csv", time.Now().Format("2006-01-02")), name)
}
