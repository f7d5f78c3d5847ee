package ses

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

func TestBuildInvoiceText(t *testing.T) {
	inv := &domain.Invoice{
		Number:      "INV-0042",
		InvoiceDate: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		SubTotal:    180,
		TaxTotal:    32.4,
		GrandTotal:  212.4,
	}
	lines := []domain.InvoiceLine{
		{Description: "Widget", Quantity: 2, LineTotal: 212.4},
	}

	body := buildInvoiceText("Asha", inv, lines)

	assert.Contains(t, body, "Hi Asha,")
	assert.Contains(t, body, "Invoice INV-0042 dated 02 Apr 2026")
	assert.Contains(t, body, "Widget x2: 212.40")
	assert.Contains(t, body, "Grand total: 212.40")

	// Plain-text body stays ASCII for mail client compatibility.
	for _, r := range body {
		assert.Less(t, r, rune(128), "non-ASCII rune %q in body", r)
	}
}

func TestBuildInvoiceHTML(t *testing.T) {
	inv := &domain.Invoice{
		Number:      "INV-0007",
		InvoiceDate: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		GrandTotal:  99.5,
	}
	body := buildInvoiceHTML("Ravi", inv, []domain.InvoiceLine{{Description: "Box", Quantity: 1, LineTotal: 99.5}})

	assert.True(t, strings.Contains(body, "<strong>INV-0007</strong>"))
	assert.Contains(t, body, "<td>Box</td><td>x1</td><td>99.50</td>")
}
