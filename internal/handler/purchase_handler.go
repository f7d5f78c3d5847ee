package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// PurchaseHandler handles purchase bill endpoints.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create handles POST /api/v1/purchases
// @Summary Create a purchase bill
// @Description Create a purchase bill with a sequential number
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body service.CreatePurchaseInput true "Purchase bill to create"
// @Success 201 {object} Response "Created purchase bill"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 404 {object} ErrorResponseBody "Vendor not found"
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input service.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}

	bill, err := h.purchaseService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// GetByID handles GET /api/v1/purchases/:id
// @Summary Get purchase bill by ID
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase bill ID (UUID)"
// @Success 200 {object} Response "Purchase bill"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid purchase bill ID")
		return
	}

	bill, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// List handles GET /api/v1/purchases
// @Summary List purchase bills
// @Tags purchases
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response "List of purchase bills"
// @Router /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	bills, total, err := h.purchaseService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}
