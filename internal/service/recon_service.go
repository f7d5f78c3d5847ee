package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/csvexport"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
	"github.com/bitukupraveen/multi-billing-sub000/internal/recon"
)

// ReconInput selects the two sides of a reconciliation run: locally
// recorded orders for one channel against settlement rows from either a
// single upload or a whole report family since a cutoff.
type ReconInput struct {
	Channel    domain.Channel
	UploadID   *uuid.UUID
	ReportType domain.ReportType
	Since      time.Time
}

// ReconResult is the outcome of one reconciliation run.
type ReconResult struct {
	Channel             domain.Channel         `json:"channel"`
	OrdersTotal         int                    `json:"orders_total"`
	SettlementTotal     int                    `json:"settlement_total"`
	MissingInSettlement []domain.Order         `json:"missing_in_settlement"`
	MissingInBooks      []domain.SettlementRow `json:"missing_in_books"`
}

// ReconService runs cross-report reconciliation between local orders and
// ingested settlement rows.
type ReconService interface {
	Reconcile(ctx context.Context, input ReconInput) (*ReconResult, error)
	ExportCSV(ctx context.Context, input ReconInput, w io.Writer) (string, error)
}

type reconService struct {
	orderRepo      port.OrderRepository
	settlementRepo port.SettlementRepository
}

// NewReconService creates a new ReconService implementation.
func NewReconService(
	orderRepo port.OrderRepository,
	settlementRepo port.SettlementRepository,
) ReconService {
	return &reconService{
		orderRepo:      orderRepo,
		settlementRepo: settlementRepo,
	}
}

func (s *reconService) Reconcile(ctx context.Context, input ReconInput) (*ReconResult, error) {
	if !domain.ValidChannels[input.Channel] {
		return nil, domain.ErrInvalidChannel
	}
	if input.UploadID == nil && !domain.ValidReportTypes[input.ReportType] {
		return nil, fmt.Errorf("%w: need an upload id or a report type", domain.ErrReconciliationInput)
	}

	orders, err := s.orderRepo.ListAllByChannel(ctx, input.Channel)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	var rows []domain.SettlementRow
	if input.UploadID != nil {
		rows, err = s.settlementRepo.ListByUpload(ctx, *input.UploadID)
	} else {
		rows, err = s.settlementRepo.ListByReportType(ctx, input.ReportType, input.Since)
	}
	if err != nil {
		return nil, fmt.Errorf("loading settlement rows: %w", err)
	}

	result := recon.Match(orders, rows)

	log.Printf("reconService.Reconcile: channel %s: %d orders vs %d settlement rows, %d missing in settlement, %d missing in books",
		input.Channel, len(orders), len(rows), len(result.MissingInTarget), len(result.MissingInSource))

	return &ReconResult{
		Channel:             input.Channel,
		OrdersTotal:         len(orders),
		SettlementTotal:     len(rows),
		MissingInSettlement: result.MissingInTarget,
		MissingInBooks:      result.MissingInSource,
	}, nil
}

// ExportCSV runs a reconciliation and streams the discrepancies as CSV.
// Returns the suggested download filename.
func (s *reconService) ExportCSV(ctx context.Context, input ReconInput, w io.Writer) (string, error) {
	result, err := s.Reconcile(ctx, input)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return "", fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteMissingOrders(result.MissingInSettlement); err != nil {
		return "", fmt.Errorf("writing missing orders: %w", err)
	}
	if err := cw.WriteMissingRows(result.MissingInBooks); err != nil {
		return "", fmt.Errorf("writing missing settlement rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return csvexport.BuildFilename(string(input.Channel)), nil
}
