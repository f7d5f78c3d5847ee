package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// ReconHandler handles reconciliation endpoints.
type ReconHandler struct {
	reconService service.ReconService
}

// NewReconHandler creates a new ReconHandler.
func NewReconHandler(reconService service.ReconService) *ReconHandler {
	return &ReconHandler{reconService: reconService}
}

// reconInput parses the shared reconciliation query parameters.
func reconInput(c *gin.Context) (service.ReconInput, bool) {
	input := service.ReconInput{
		Channel:    domain.Channel(c.Query("channel")),
		ReportType: domain.ReportType(c.Query("report_type")),
	}

	if raw := c.Query("upload_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload_id")
			return input, false
		}
		input.UploadID = &id
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC3339")
			return input, false
		}
		input.Since = since
	}
	return input, true
}

// Reconcile handles GET /api/v1/reconciliation
// @Summary Reconcile local orders against settlement rows
// @Description Match a channel's recorded orders against ingested settlement rows and report discrepancies on both sides
// @Tags reconciliation
// @Produce json
// @Param channel query string true "Channel (offline, flipkart, shopify)"
// @Param upload_id query string false "Restrict to one settlement upload"
// @Param report_type query string false "Report family when no upload_id given"
// @Param since query string false "Cutoff (RFC3339) when matching by report family"
// @Success 200 {object} Response "Reconciliation result"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Router /reconciliation [get]
func (h *ReconHandler) Reconcile(c *gin.Context) {
	input, ok := reconInput(c)
	if !ok {
		return
	}

	result, err := h.reconService.Reconcile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/reconciliation/export
// @Summary Export reconciliation discrepancies as CSV
// @Tags reconciliation
// @Produce text/csv
// @Param channel query string true "Channel (offline, flipkart, shopify)"
// @Param upload_id query string false "Restrict to one settlement upload"
// @Param report_type query string false "Report family when no upload_id given"
// @Param since query string false "Cutoff (RFC3339) when matching by report family"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Router /reconciliation/export [get]
func (h *ReconHandler) ExportCSV(c *gin.Context) {
	input, ok := reconInput(c)
	if !ok {
		return
	}

	// Buffer the export so errors can still produce a JSON error response.
	var buf bytes.Buffer
	filename, err := h.reconService.ExportCSV(c.Request.Context(), input, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
