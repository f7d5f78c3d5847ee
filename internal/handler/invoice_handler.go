package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create an invoice with computed line amounts and a sequential channel-scoped number
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body service.CreateInvoiceInput true "Invoice to create"
// @Success 201 {object} Response "Created invoice with lines"
// @Failure 400 {object} ErrorResponseBody "Invalid channel, tax mode, or line item"
// @Failure 409 {object} ErrorResponseBody "Number allocation conflict"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}

	inv, lines, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"invoice": inv, "lines": lines})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response "Invoice with lines"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, lines, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoice": inv, "lines": lines})
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param channel query string false "Filter by channel (offline, flipkart, shopify)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response "List of invoices"
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	channel := domain.Channel(c.Query("channel"))

	invoices, total, err := h.invoiceService.List(c.Request.Context(), channel, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// pagination parses the shared offset/limit query parameters.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
