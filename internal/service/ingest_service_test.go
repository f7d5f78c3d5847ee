package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/config"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
	"github.com/bitukupraveen/multi-billing-sub000/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "ap-south-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 25,
		PresignExpiry: 3600,
	}
}

func newIngestService(fileRepo *mocks.MockFileMetaRepo, settlementRepo *mocks.MockSettlementRepo, storage *mocks.MockObjectStorage) service.IngestService {
	s3cfg := testS3Config()
	return service.NewIngestService(fileRepo, settlementRepo, storage, &s3cfg, &config.IngestConfig{MaxRows: 1000})
}

// createMultipartFile builds a fake multipart file for upload tests.
func createMultipartFile(t *testing.T, filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	file, err := form.File["file"][0].Open()
	require.NoError(t, err)
	return file, form.File["file"][0]
}

func csvContent() []byte {
	return []byte("Order ID,Order Item ID,SKU,Sale Amount\nOD1,OI1,A,450.5\nOD2,OI2,B,100\n")
}

func TestIngestService_Upload_Success(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newIngestService(fileRepo, settlementRepo, storage)

	file, header := createMultipartFile(t, "payouts.csv", csvContent(), "text/csv")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/x", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	meta, err := svc.Upload(context.Background(), service.SettlementUploadInput{
		ReportType: domain.ReportTypeOrder,
		Channel:    domain.ChannelFlipkart,
		File:       file,
		Header:     header,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FileTypeCSV, meta.FileType)
	assert.Equal(t, domain.FileStatusUploaded, meta.Status)
	assert.Equal(t, "payouts.csv", meta.OriginalName)
	assert.Contains(t, meta.S3Key, "settlements/flipkart/order_report/")
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestIngestService_Upload_Validation(t *testing.T) {
	svc := newIngestService(new(mocks.MockFileMetaRepo), new(mocks.MockSettlementRepo), new(mocks.MockObjectStorage))

	file, header := createMultipartFile(t, "payouts.csv", csvContent(), "text/csv")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.SettlementUploadInput{
		ReportType: "mystery", Channel: domain.ChannelFlipkart, File: file, Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownReportType)

	_, err = svc.Upload(context.Background(), service.SettlementUploadInput{
		ReportType: domain.ReportTypeOrder, Channel: "ebay", File: file, Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)

	pdfFile, pdfHeader := createMultipartFile(t, "report.pdf", []byte("%PDF-1.4 not a spreadsheet"), "application/pdf")
	defer pdfFile.Close()
	_, err = svc.Upload(context.Background(), service.SettlementUploadInput{
		ReportType: domain.ReportTypeOrder, Channel: domain.ChannelFlipkart, File: pdfFile, Header: pdfHeader,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestIngestService_Upload_StorageFailureMarksFailed(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newIngestService(fileRepo, new(mocks.MockSettlementRepo), storage)

	file, header := createMultipartFile(t, "payouts.csv", csvContent(), "text/csv")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 unavailable"))
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).Return(nil)

	_, err := svc.Upload(context.Background(), service.SettlementUploadInput{
		ReportType: domain.ReportTypeOrder, Channel: domain.ChannelFlipkart, File: file, Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	fileRepo.AssertExpectations(t)
}

func uploadedMeta(uploadID uuid.UUID) *domain.FileMeta {
	return &domain.FileMeta{
		ID:         uploadID,
		FileType:   domain.FileTypeCSV,
		S3Bucket:   "test-bucket",
		S3Key:      "settlements/flipkart/order_report/x/payouts.csv",
		ReportType: domain.ReportTypeOrder,
		Channel:    domain.ChannelFlipkart,
		Status:     domain.FileStatusUploaded,
	}
}

func TestIngestService_Ingest_Success(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newIngestService(fileRepo, settlementRepo, storage)

	uploadID := uuid.New()
	fileRepo.On("GetByID", mock.Anything, uploadID).Return(uploadedMeta(uploadID), nil)
	storage.On("Download", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(csvContent(), nil)

	var created []*domain.SettlementRow
	settlementRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SettlementRow")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*domain.SettlementRow))
		}).Return(nil)
	fileRepo.On("UpdateStatus", mock.Anything, uploadID, domain.FileStatusIngested).Return(nil)

	report, err := svc.Ingest(context.Background(), uploadID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Committed)
	assert.Equal(t, 0, report.Skipped)

	require.Len(t, created, 2)
	assert.Equal(t, "OD1", created[0].OrderID)
	assert.Equal(t, "OI1", created[0].OrderItemID)
	assert.Equal(t, 1, created[0].RowIndex)
	assert.Equal(t, domain.ReportTypeOrder, created[0].ReportType)

	// Resolved fields and the raw row are both persisted.
	var fields map[string]any
	require.NoError(t, json.Unmarshal(created[0].Fields, &fields))
	assert.InDelta(t, 450.5, fields["saleAmount"].(float64), 1e-9)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(created[0].RawData, &raw))
	assert.Equal(t, "450.5", raw["Sale Amount"])
}

func TestIngestService_Ingest_PartialFailure(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	settlementRepo := new(mocks.MockSettlementRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newIngestService(fileRepo, settlementRepo, storage)

	uploadID := uuid.New()
	fileRepo.On("GetByID", mock.Anything, uploadID).Return(uploadedMeta(uploadID), nil)
	storage.On("Download", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(csvContent(), nil)

	// First row persists, second hits a constraint.
	settlementRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *domain.SettlementRow) bool {
		return row.RowIndex == 1
	})).Return(nil)
	settlementRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *domain.SettlementRow) bool {
		return row.RowIndex == 2
	})).Return(errors.New("duplicate key"))
	fileRepo.On("UpdateStatus", mock.Anything, uploadID, domain.FileStatusIngested).Return(nil)

	report, err := svc.Ingest(context.Background(), uploadID)
	assert.ErrorIs(t, err, domain.ErrPartialIngestion)

	require.NotNil(t, report)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Committed)
	assert.Equal(t, 1, report.Skipped)
}

func TestIngestService_Ingest_WrongStatus(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	svc := newIngestService(fileRepo, new(mocks.MockSettlementRepo), new(mocks.MockObjectStorage))

	uploadID := uuid.New()
	meta := uploadedMeta(uploadID)
	meta.Status = domain.FileStatusPending
	fileRepo.On("GetByID", mock.Anything, uploadID).Return(meta, nil)

	_, err := svc.Ingest(context.Background(), uploadID)
	assert.Error(t, err)
}

func TestIngestService_Ingest_EmptySheetMarksFailed(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newIngestService(fileRepo, new(mocks.MockSettlementRepo), storage)

	uploadID := uuid.New()
	fileRepo.On("GetByID", mock.Anything, uploadID).Return(uploadedMeta(uploadID), nil)
	storage.On("Download", mock.Anything, "test-bucket", mock.AnythingOfType("string")).
		Return([]byte("Order ID,Sale Amount\n"), nil)
	fileRepo.On("UpdateStatus", mock.Anything, uploadID, domain.FileStatusFailed).Return(nil)

	_, err := svc.Ingest(context.Background(), uploadID)
	assert.ErrorIs(t, err, domain.ErrEmptySheet)
	fileRepo.AssertExpectations(t)
}
