package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/config"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/ingest"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
	"github.com/bitukupraveen/multi-billing-sub000/internal/spreadsheet"
)

// SettlementUploadInput is the DTO for settlement file upload requests.
type SettlementUploadInput struct {
	ReportType domain.ReportType
	Channel    domain.Channel
	File       multipart.File
	Header     *multipart.FileHeader
}

// IngestReport summarizes one ingestion run. Committed + Skipped = Total;
// skipped rows are duplicates or rows that failed to persist.
type IngestReport struct {
	UploadID  uuid.UUID `json:"upload_id"`
	Total     int       `json:"total"`
	Committed int       `json:"committed"`
	Skipped   int       `json:"skipped"`
}

// IngestService owns the settlement report pipeline: spreadsheet upload to
// object storage, then decode, resolve to canonical rows, and persist.
type IngestService interface {
	Upload(ctx context.Context, input SettlementUploadInput) (*domain.FileMeta, error)
	Ingest(ctx context.Context, uploadID uuid.UUID) (*IngestReport, error)
	GetFile(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	ListFiles(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	ListRows(ctx context.Context, uploadID uuid.UUID) ([]domain.SettlementRow, error)
}

type ingestService struct {
	fileRepo       port.FileMetaRepository
	settlementRepo port.SettlementRepository
	storage        port.ObjectStorage
	s3cfg          *config.S3Config
	maxRows        int
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	fileRepo port.FileMetaRepository,
	settlementRepo port.SettlementRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	ingestCfg *config.IngestConfig,
) IngestService {
	return &ingestService{
		fileRepo:       fileRepo,
		settlementRepo: settlementRepo,
		storage:        storage,
		s3cfg:          s3cfg,
		maxRows:        ingestCfg.MaxRows,
	}
}

func (s *ingestService) Upload(ctx context.Context, input SettlementUploadInput) (*domain.FileMeta, error) {
	if !domain.ValidReportTypes[input.ReportType] {
		return nil, domain.ErrUnknownReportType
	}
	if !domain.ValidChannels[input.Channel] {
		return nil, domain.ErrInvalidChannel
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes; extension alone is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("settlements/%s/%s/%s/%s", input.Channel, input.ReportType, fileID, input.Header.Filename)

	meta := &domain.FileMeta{
		ID:           fileID,
		FileName:     fileID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.s3cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  detectedType,
		ReportType:   input.ReportType,
		Channel:      input.Channel,
		Status:       domain.FileStatusPending,
	}

	log.Printf("ingestService.Upload: uploading %s (%s, %d bytes) as %s report for channel %s",
		input.Header.Filename, detectedType, input.Header.Size, input.ReportType, input.Channel)

	if err := s.fileRepo.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("creating file metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: detectedType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("ingestService.Upload: S3 upload failed for file %s: %v", meta.ID, err)
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating file status: %w", err)
	}
	meta.Status = domain.FileStatusUploaded
	return meta, nil
}

// Ingest downloads an uploaded settlement file, resolves each spreadsheet
// row into a canonical settlement row, and persists the batch. Individual
// row failures are skipped and reported rather than aborting the run;
// ErrPartialIngestion is returned when any row was skipped.
func (s *ingestService) Ingest(ctx context.Context, uploadID uuid.UUID) (*IngestReport, error) {
	meta, err := s.fileRepo.GetByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	if meta.Status != domain.FileStatusUploaded && meta.Status != domain.FileStatusFailed {
		return nil, fmt.Errorf("file %s is %s, expected %s", uploadID, meta.Status, domain.FileStatusUploaded)
	}

	schema := ingest.SchemaFor(string(meta.ReportType))
	if schema == nil {
		return nil, domain.ErrUnknownReportType
	}

	data, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
		return nil, fmt.Errorf("downloading settlement file: %w", err)
	}

	rows, err := spreadsheet.ReadRows(data, meta.FileType)
	if err != nil {
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
		return nil, fmt.Errorf("decoding settlement file: %w", err)
	}
	if len(rows) > s.maxRows {
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
		return nil, fmt.Errorf("settlement file has %d rows, limit is %d", len(rows), s.maxRows)
	}

	report := &IngestReport{UploadID: uploadID, Total: len(rows)}
	for i, raw := range rows {
		if err := s.persistRow(ctx, meta, schema, i, raw); err != nil {
			log.Printf("ingestService.Ingest: upload %s row %d skipped: %v", uploadID, i+1, err)
			report.Skipped++
			continue
		}
		report.Committed++
	}

	status := domain.FileStatusIngested
	if report.Committed == 0 && report.Total > 0 {
		status = domain.FileStatusFailed
	}
	if err := s.fileRepo.UpdateStatus(ctx, meta.ID, status); err != nil {
		return report, fmt.Errorf("updating file status: %w", err)
	}

	log.Printf("ingestService.Ingest: upload %s done: %d total, %d committed, %d skipped",
		uploadID, report.Total, report.Committed, report.Skipped)

	if report.Skipped > 0 {
		return report, domain.ErrPartialIngestion
	}
	return report, nil
}

func (s *ingestService) persistRow(ctx context.Context, meta *domain.FileMeta, schema *ingest.Schema, index int, raw ingest.RawRow) error {
	rec := ingest.Resolve(raw, schema)

	fields, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("encoding resolved fields: %w", err)
	}
	rawData, err := json.Marshal(rec.Raw)
	if err != nil {
		return fmt.Errorf("encoding raw row: %w", err)
	}

	row := &domain.SettlementRow{
		ID:          uuid.New(),
		UploadID:    meta.ID,
		ReportType:  meta.ReportType,
		RowIndex:    index + 1,
		OrderID:     rec.String(ingest.FieldOrderID),
		OrderItemID: rec.String(ingest.FieldOrderItemID),
		SKU:         rec.String(ingest.FieldSKU),
		Fields:      fields,
		RawData:     rawData,
	}
	return s.settlementRepo.Create(ctx, row)
}

// marshalRecord flattens a resolved record's string and numeric fields into
// one JSON object.
func marshalRecord(rec *ingest.Record) (json.RawMessage, error) {
	flat := make(map[string]any, len(rec.Strings)+len(rec.Numbers))
	for k, v := range rec.Strings {
		flat[k] = v
	}
	for k, v := range rec.Numbers {
		flat[k] = v
	}
	return json.Marshal(flat)
}

func (s *ingestService) GetFile(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error) {
	return s.fileRepo.GetByID(ctx, id)
}

func (s *ingestService) ListFiles(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error) {
	return s.fileRepo.List(ctx, offset, limit)
}

func (s *ingestService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	meta, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.s3cfg.PresignExpiry)
}

func (s *ingestService) ListRows(ctx context.Context, uploadID uuid.UUID) ([]domain.SettlementRow, error) {
	if _, err := s.fileRepo.GetByID(ctx, uploadID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListByUpload(ctx, uploadID)
}
