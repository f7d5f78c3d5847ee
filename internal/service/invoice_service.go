package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

// InvoiceLineInput is the DTO for one requested invoice line.
type InvoiceLineInput struct {
	Description     string  `json:"description"`
	SKU             string  `json:"sku"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxRatePercent  float64 `json:"tax_rate_percent"`
}

// CreateInvoiceInput is the DTO for invoice creation requests.
type CreateInvoiceInput struct {
	Channel        domain.Channel     `json:"channel"`
	TaxMode        billing.TaxMode    `json:"tax_mode"`
	CustomerID     *uuid.UUID         `json:"customer_id"`
	InvoiceDate    time.Time          `json:"invoice_date"`
	Lines          []InvoiceLineInput `json:"lines"`
	LogisticsFee   float64            `json:"logistics_fee"`
	OtherTax       float64            `json:"other_tax"`
	MarketplaceFee float64            `json:"marketplace_fee"`
	RefundAmount   float64            `json:"refund_amount"`
}

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, []domain.InvoiceLine, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, []domain.InvoiceLine, error)
	List(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Invoice, int, error)
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	counterRepo  port.CounterRepository
	customerRepo port.CustomerRepository
	email        port.EmailSender
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	counterRepo port.CounterRepository,
	customerRepo port.CustomerRepository,
	email port.EmailSender,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		counterRepo:  counterRepo,
		customerRepo: customerRepo,
		email:        email,
	}
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, []domain.InvoiceLine, error) {
	if !domain.ValidChannels[input.Channel] {
		return nil, nil, domain.ErrInvalidChannel
	}
	if !input.TaxMode.Valid() {
		return nil, nil, domain.ErrInvalidTaxMode
	}
	if len(input.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: invoice needs at least one line", billing.ErrInvalidLineItem)
	}

	items := make([]billing.LineItem, len(input.Lines))
	for i, line := range input.Lines {
		items[i] = billing.LineItem{
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			TaxRatePercent:  line.TaxRatePercent,
		}
		if err := billing.ValidateLineItem(items[i]); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	// Allocate the sequential number first; if allocation fails no invoice
	// is created.
	seq, err := s.counterRepo.AllocateNext(ctx, invoiceCounterKey(input.Channel))
	if err != nil {
		log.Printf("invoiceService.Create: counter allocation failed for channel %s: %v", input.Channel, err)
		return nil, nil, fmt.Errorf("allocating invoice number: %w", err)
	}
	number := FormatInvoiceNumber(input.Channel, seq)

	adj := billing.Adjustments{
		LogisticsFee:   input.LogisticsFee,
		OtherTax:       input.OtherTax,
		MarketplaceFee: input.MarketplaceFee,
		RefundAmount:   input.RefundAmount,
	}
	totals := billing.ComputeTotals(items, input.TaxMode, adj)

	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now().UTC()
	}

	inv := &domain.Invoice{
		ID:             uuid.New(),
		Number:         number,
		Channel:        input.Channel,
		TaxMode:        input.TaxMode,
		CustomerID:     input.CustomerID,
		InvoiceDate:    invoiceDate,
		SubTotal:       totals.SubTotal,
		TaxTotal:       totals.TaxTotal,
		LogisticsFee:   input.LogisticsFee,
		OtherTax:       input.OtherTax,
		MarketplaceFee: input.MarketplaceFee,
		RefundAmount:   input.RefundAmount,
		GrandTotal:     totals.GrandTotal,
	}

	lines := make([]domain.InvoiceLine, len(input.Lines))
	for i, line := range input.Lines {
		amounts := billing.ComputeLine(items[i], input.TaxMode)
		lines[i] = domain.InvoiceLine{
			ID:              uuid.New(),
			InvoiceID:       inv.ID,
			Position:        i + 1,
			Description:     line.Description,
			SKU:             line.SKU,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			TaxRatePercent:  line.TaxRatePercent,
			TaxableValue:    amounts.TaxableValue,
			TaxAmount:       amounts.TaxAmount,
			LineTotal:       amounts.LineTotal,
		}
	}

	if err := s.invoiceRepo.Create(ctx, inv, lines); err != nil {
		log.Printf("invoiceService.Create: persisting invoice %s failed: %v", number, err)
		return nil, nil, fmt.Errorf("creating invoice: %w", err)
	}

	log.Printf("invoiceService.Create: created invoice %s (channel %s, %d lines, grand total %.2f)",
		number, input.Channel, len(lines), billing.Round2(inv.GrandTotal))

	s.notifyCustomer(ctx, inv, lines)
	return inv, lines, nil
}

// notifyCustomer sends the invoice-issued email when the invoice has a
// customer with an email address. Failures are logged, never propagated.
func (s *invoiceService) notifyCustomer(ctx context.Context, inv *domain.Invoice, lines []domain.InvoiceLine) {
	if inv.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, *inv.CustomerID)
	if err != nil {
		log.Printf("invoiceService.notifyCustomer: loading customer %s: %v", inv.CustomerID, err)
		return
	}
	if customer.Email == "" {
		return
	}
	if err := s.email.SendInvoiceIssued(ctx, customer.Email, customer.Name, inv, lines); err != nil {
		log.Printf("invoiceService.notifyCustomer: sending invoice %s to %s: %v", inv.Number, customer.Email, err)
	}
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, []domain.InvoiceLine, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Invoice, int, error) {
	if channel != "" && !domain.ValidChannels[channel] {
		return nil, 0, domain.ErrInvalidChannel
	}
	return s.invoiceRepo.List(ctx, channel, offset, limit)
}
