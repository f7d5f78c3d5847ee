package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for discrepancy exports. Both
// discrepancy sides share one column layout; side-specific details land in
// the Detail column.
var columns = []string{
	"Discrepancy",
	"Order ID",
	"Order Item ID",
	"SKU",
	"Quantity",
	"Amount",
	"Detail",
	"Recorded At",
}

const (
	sideMissingInSettlement = "missing_in_settlement"
	sideMissingInBooks      = "missing_in_books"
)

// Writer wraps csv.Writer for exporting reconciliation discrepancies.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteMissingOrders writes local orders that have no settlement counterpart.
func (w *Writer) WriteMissingOrders(orders []domain.Order) error {
	for i := range orders {
		if err := w.csv.Write(orderToRow(&orders[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteMissingRows writes settlement rows that have no local order.
func (w *Writer) WriteMissingRows(rows []domain.SettlementRow) error {
	for i := range rows {
		if err := w.csv.Write(settlementToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func orderToRow(o *domain.Order) []string {
	return []string{
		sideMissingInSettlement,
		o.OrderID,
		o.OrderItemID,
		o.SKU,
		strconv.Itoa(o.Quantity),
		formatMoney(o.Amount),
		fmt.Sprintf("%s order, status %s", o.Channel, o.Status),
		o.OrderedAt.Format(time.RFC3339),
	}
}

func settlementToRow(r *domain.SettlementRow) []string {
	return []string{
		sideMissingInBooks,
		r.OrderID,
		r.OrderItemID,
		r.SKU,
		"",
		"",
		fmt.Sprintf("%s row %d (upload %s)", r.ReportType, r.RowIndex, r.UploadID),
		r.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: reconciliation_{channel}_{YYYY-MM-DD}.csv
func BuildFilename(channel string) string {
	sanitized := SanitizeFilename(channel)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("reconciliation_%s_%s.csv", sanitized, date)
}
