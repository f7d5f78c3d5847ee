package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrVendorNotFound):
		return http.StatusNotFound, "VENDOR_NOT_FOUND", "vendor not found"
	case errors.Is(err, billing.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", err.Error()
	case errors.Is(err, domain.ErrInvalidTaxMode):
		return http.StatusBadRequest, "INVALID_TAX_MODE", "tax mode must be inclusive or exclusive"
	case errors.Is(err, domain.ErrInvalidChannel):
		return http.StatusBadRequest, "INVALID_CHANNEL", "channel must be offline, flipkart, or shopify"
	case errors.Is(err, domain.ErrAllocationConflict):
		return http.StatusConflict, "ALLOCATION_CONFLICT", "could not allocate a document number; retry the request"
	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict, "DUPLICATE_SKU", "a product with this SKU already exists"
	case errors.Is(err, domain.ErrDuplicateOrderItem):
		return http.StatusConflict, "DUPLICATE_ORDER_ITEM", "an order with this order item id already exists"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx, csv"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrEmptySheet):
		return http.StatusBadRequest, "EMPTY_SHEET", "spreadsheet has no data rows"
	case errors.Is(err, domain.ErrUnknownReportType):
		return http.StatusBadRequest, "UNKNOWN_REPORT_TYPE", "report type must be order_report or gst_report"
	case errors.Is(err, domain.ErrPartialIngestion):
		return http.StatusMultiStatus, "PARTIAL_INGESTION", "some rows could not be ingested; see report"
	case errors.Is(err, domain.ErrReconciliationInput):
		return http.StatusBadRequest, "INVALID_RECONCILIATION_INPUT", err.Error()
	case errors.Is(err, domain.ErrMarketplaceAuth):
		return http.StatusBadGateway, "MARKETPLACE_AUTH_FAILED", "marketplace authentication failed"
	case errors.Is(err, domain.ErrMarketplaceSync):
		return http.StatusBadGateway, "MARKETPLACE_SYNC_FAILED", "marketplace order fetch failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
