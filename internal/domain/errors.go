package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidTaxMode      = errors.New("invalid tax mode")
	ErrInvalidChannel      = errors.New("invalid sales channel")
	ErrAllocationConflict  = errors.New("counter allocation could not commit")
	ErrDuplicateSKU        = errors.New("sku already exists")
	ErrDuplicateOrderItem  = errors.New("order item already recorded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrEmptySheet          = errors.New("spreadsheet contains no data rows")
	ErrUnknownReportType   = errors.New("unknown settlement report type")
	ErrPartialIngestion    = errors.New("ingestion stopped before all rows were persisted")
	ErrMarketplaceAuth     = errors.New("marketplace credential exchange failed")
	ErrMarketplaceSync     = errors.New("marketplace sync failed")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrReconciliationInput = errors.New("reconciliation requires both record sets")
)
