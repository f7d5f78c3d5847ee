package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		// Message must name the lowercase values the API actually binds.
		{domain.ErrInvalidTaxMode, http.StatusBadRequest, "INVALID_TAX_MODE", "tax mode must be inclusive or exclusive"},
		{domain.ErrInvalidChannel, http.StatusBadRequest, "INVALID_CHANNEL", "channel must be offline, flipkart, or shopify"},
		{domain.ErrAllocationConflict, http.StatusConflict, "ALLOCATION_CONFLICT", "could not allocate a document number; retry the request"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"},
		{domain.ErrPartialIngestion, http.StatusMultiStatus, "PARTIAL_INGESTION", "some rows could not be ingested; see report"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
	}
	for _, tt := range tests {
		status, code, msg := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.wantStatus, status, "error %v", tt.err)
		assert.Equal(t, tt.wantCode, code, "error %v", tt.err)
		assert.Equal(t, tt.wantMsg, msg, "error %v", tt.err)
	}
}

func TestMapDomainError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("line 2: %w", billing.ErrInvalidLineItem)
	status, code, msg := handler.MapDomainError(wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_LINE_ITEM", code)
	assert.Equal(t, wrapped.Error(), msg)
}
