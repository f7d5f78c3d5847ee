package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// SettlementHandler handles settlement report upload and ingestion endpoints.
type SettlementHandler struct {
	ingestService service.IngestService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(ingestService service.IngestService) *SettlementHandler {
	return &SettlementHandler{ingestService: ingestService}
}

// Upload handles POST /api/v1/settlements/upload
// @Summary Upload a settlement report
// @Description Upload a settlement spreadsheet (XLSX or CSV) for a channel and report type
// @Tags settlements
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Settlement spreadsheet (XLSX or CSV)"
// @Param report_type formData string true "Report type (order_report or gst_report)"
// @Param channel formData string true "Channel (offline, flipkart, shopify)"
// @Success 201 {object} Response "Uploaded file metadata"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Router /settlements/upload [post]
func (h *SettlementHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.SettlementUploadInput{
		ReportType: domain.ReportType(c.PostForm("report_type")),
		Channel:    domain.Channel(c.PostForm("channel")),
		File:       file,
		Header:     header,
	}

	meta, err := h.ingestService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, meta)
}

// Ingest handles POST /api/v1/settlements/:id/ingest
// @Summary Ingest an uploaded settlement report
// @Description Decode, resolve and persist the rows of an uploaded settlement file
// @Tags settlements
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} Response "Ingestion report"
// @Success 207 {object} Response "Partial ingestion; some rows skipped"
// @Failure 400 {object} ErrorResponseBody "File not ingestable"
// @Failure 404 {object} ErrorResponseBody "Upload not found"
// @Router /settlements/{id}/ingest [post]
func (h *SettlementHandler) Ingest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	report, err := h.ingestService.Ingest(c.Request.Context(), id)
	if err != nil {
		// A partial run still produced a report; return it with 207.
		if errors.Is(err, domain.ErrPartialIngestion) {
			c.JSON(http.StatusMultiStatus, APIResponse{Success: true, Data: report})
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ListFiles handles GET /api/v1/settlements
func (h *SettlementHandler) ListFiles(c *gin.Context) {
	offset, limit := pagination(c)
	files, total, err := h.ingestService.ListFiles(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetFile handles GET /api/v1/settlements/:id
func (h *SettlementHandler) GetFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	meta, err := h.ingestService.GetFile(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.ingestService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"file": meta, "download_url": downloadURL})
}

// ListRows handles GET /api/v1/settlements/:id/rows
func (h *SettlementHandler) ListRows(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	rows, err := h.ingestService.ListRows(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}
