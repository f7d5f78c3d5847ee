package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

// CreatePurchaseInput is the DTO for purchase bill creation requests.
type CreatePurchaseInput struct {
	VendorID  *uuid.UUID `json:"vendor_id"`
	BillDate  time.Time  `json:"bill_date"`
	Category  string     `json:"category"`
	Notes     string     `json:"notes"`
	Amount    float64    `json:"amount"`
	TaxAmount float64    `json:"tax_amount"`
}

// PurchaseService defines the purchase bill contract.
type PurchaseService interface {
	Create(ctx context.Context, input CreatePurchaseInput) (*domain.PurchaseBill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseBill, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseBill, int, error)
}

type purchaseService struct {
	purchaseRepo port.PurchaseRepository
	counterRepo  port.CounterRepository
	vendorRepo   port.VendorRepository
}

// NewPurchaseService creates a new PurchaseService implementation.
func NewPurchaseService(
	purchaseRepo port.PurchaseRepository,
	counterRepo port.CounterRepository,
	vendorRepo port.VendorRepository,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		counterRepo:  counterRepo,
		vendorRepo:   vendorRepo,
	}
}

func (s *purchaseService) Create(ctx context.Context, input CreatePurchaseInput) (*domain.PurchaseBill, error) {
	if input.Amount < 0 {
		return nil, fmt.Errorf("purchase amount must be >= 0, got %g", input.Amount)
	}
	if input.VendorID != nil {
		if _, err := s.vendorRepo.GetByID(ctx, *input.VendorID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrVendorNotFound
			}
			return nil, fmt.Errorf("loading vendor: %w", err)
		}
	}

	seq, err := s.counterRepo.AllocateNext(ctx, purchaseCounterKey)
	if err != nil {
		log.Printf("purchaseService.Create: counter allocation failed: %v", err)
		return nil, fmt.Errorf("allocating purchase number: %w", err)
	}

	billDate := input.BillDate
	if billDate.IsZero() {
		billDate = time.Now().UTC()
	}

	bill := &domain.PurchaseBill{
		ID:        uuid.New(),
		Number:    FormatPurchaseNumber(seq),
		VendorID:  input.VendorID,
		BillDate:  billDate,
		Category:  input.Category,
		Notes:     input.Notes,
		Amount:    input.Amount,
		TaxAmount: input.TaxAmount,
	}

	if err := s.purchaseRepo.Create(ctx, bill); err != nil {
		log.Printf("purchaseService.Create: persisting bill %s failed: %v", bill.Number, err)
		return nil, fmt.Errorf("creating purchase bill: %w", err)
	}
	return bill, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseBill, error) {
	return s.purchaseRepo.GetByID(ctx, id)
}

func (s *purchaseService) List(ctx context.Context, offset, limit int) ([]domain.PurchaseBill, int, error) {
	return s.purchaseRepo.List(ctx, offset, limit)
}
