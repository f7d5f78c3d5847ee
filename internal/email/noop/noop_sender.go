package noop

import (
	"context"
	"log"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceIssued(_ context.Context, toEmail, toName string, inv *domain.Invoice, _ []domain.InvoiceLine) error {
	log.Printf("[NOOP EMAIL] Invoice %s issued to %s (%s), grand total %.2f",
		inv.Number, toName, toEmail, inv.GrandTotal)
	return nil
}
