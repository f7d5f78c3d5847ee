package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
	"github.com/bitukupraveen/multi-billing-sub000/mocks"
)

func validInvoiceInput() service.CreateInvoiceInput {
	return service.CreateInvoiceInput{
		Channel: domain.ChannelOffline,
		TaxMode: billing.TaxExclusive,
		Lines: []service.InvoiceLineInput{
			{Description: "Widget", SKU: "W-1", UnitPrice: 100, Quantity: 2, DiscountPercent: 10, TaxRatePercent: 18},
		},
	}
}

func TestInvoiceService_Create_Success(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(invoiceRepo, counterRepo, customerRepo, email)

	counterRepo.On("AllocateNext", mock.Anything, "invoice:offline").Return(int64(7), nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).Return(nil)

	inv, lines, err := svc.Create(context.Background(), validInvoiceInput())
	require.NoError(t, err)

	assert.Equal(t, "INV-0007", inv.Number)
	assert.InDelta(t, 180.0, inv.SubTotal, 1e-9)
	assert.InDelta(t, 32.4, inv.TaxTotal, 1e-9)
	assert.InDelta(t, 212.4, inv.GrandTotal, 1e-9)

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Position)
	assert.Equal(t, inv.ID, lines[0].InvoiceID)
	assert.InDelta(t, 180.0, lines[0].TaxableValue, 1e-9)
	assert.InDelta(t, 32.4, lines[0].TaxAmount, 1e-9)
	assert.InDelta(t, 212.4, lines[0].LineTotal, 1e-9)

	invoiceRepo.AssertExpectations(t)
	counterRepo.AssertExpectations(t)
	// No customer on the invoice: no email attempted.
	email.AssertNotCalled(t, "SendInvoiceIssued", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_AllocationFailureAborts(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(invoiceRepo, counterRepo, customerRepo, email)

	counterRepo.On("AllocateNext", mock.Anything, "invoice:offline").
		Return(int64(0), domain.ErrAllocationConflict)

	_, _, err := svc.Create(context.Background(), validInvoiceInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAllocationConflict)

	// No document may be created from a failed allocation.
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_InvalidLineRejectedBeforeAllocation(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(invoiceRepo, counterRepo, customerRepo, email)

	input := validInvoiceInput()
	input.Lines[0].Quantity = 0

	_, _, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, billing.ErrInvalidLineItem)

	// Rejected invoices must not burn a sequence number.
	counterRepo.AssertNotCalled(t, "AllocateNext", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_InvalidChannelAndMode(t *testing.T) {
	svc := service.NewInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockCounterRepo), new(mocks.MockCustomerRepo), new(mocks.MockEmailSender))

	input := validInvoiceInput()
	input.Channel = "amazon"
	_, _, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)

	input = validInvoiceInput()
	input.TaxMode = "PARTIAL"
	_, _, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxMode)

	input = validInvoiceInput()
	input.Lines = nil
	_, _, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, billing.ErrInvalidLineItem)
}

func TestInvoiceService_Create_EmailBestEffort(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(invoiceRepo, counterRepo, customerRepo, email)

	customerID := uuid.New()
	input := validInvoiceInput()
	input.CustomerID = &customerID

	counterRepo.On("AllocateNext", mock.Anything, "invoice:offline").Return(int64(1), nil)
	invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("GetByID", mock.Anything, customerID).
		Return(&domain.Customer{ID: customerID, Name: "Asha", Email: "asha@example.com"}, nil)
	email.On("SendInvoiceIssued", mock.Anything, "asha@example.com", "Asha", mock.Anything, mock.Anything).
		Return(errors.New("ses throttled"))

	// A failed notification must not fail the creation.
	inv, _, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.Number)
	email.AssertExpectations(t)
}

func TestInvoiceService_Create_InclusiveTotals(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	counterRepo := new(mocks.MockCounterRepo)
	svc := service.NewInvoiceService(invoiceRepo, counterRepo, new(mocks.MockCustomerRepo), new(mocks.MockEmailSender))

	input := validInvoiceInput()
	input.TaxMode = billing.TaxInclusive

	counterRepo.On("AllocateNext", mock.Anything, "invoice:offline").Return(int64(42), nil)
	invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	inv, lines, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "INV-0042", inv.Number)
	assert.InDelta(t, 180.0, inv.GrandTotal, 1e-9)
	assert.InDelta(t, 180.0/1.18, inv.SubTotal, 1e-9)
	assert.InDelta(t, 180.0, lines[0].LineTotal, 1e-9)
}

// memCounter is an in-memory allocator with the exactly-once contract.
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memCounter) AllocateNext(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) Current(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key], nil
}

// recordingInvoiceRepo captures created invoice numbers concurrently.
type recordingInvoiceRepo struct {
	mocks.MockInvoiceRepo
	mu      sync.Mutex
	numbers []string
}

func (r *recordingInvoiceRepo) Create(_ context.Context, inv *domain.Invoice, _ []domain.InvoiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.numbers = append(r.numbers, inv.Number)
	return nil
}

func TestInvoiceService_Create_ConcurrentNumbersUnique(t *testing.T) {
	repo := &recordingInvoiceRepo{}
	svc := service.NewInvoiceService(repo, &memCounter{}, new(mocks.MockCustomerRepo), new(mocks.MockEmailSender))

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, err := svc.Create(context.Background(), validInvoiceInput())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, repo.numbers, n)
	seen := make(map[string]bool, n)
	for _, number := range repo.numbers {
		assert.False(t, seen[number], "number %s allocated twice", number)
		seen[number] = true
	}
	assert.True(t, seen["INV-0001"])
	assert.True(t, seen["INV-0100"])
}
