package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, toEmail, toName, inv, lines)
	return args.Error(0)
}
