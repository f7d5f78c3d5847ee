package port

import (
	"context"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// EmailSender defines the contract for sending invoice notifications.
type EmailSender interface {
	SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice, lines []domain.InvoiceLine) error
}
