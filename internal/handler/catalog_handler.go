package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// CatalogHandler handles product, customer and vendor CRUD endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateProduct handles POST /api/v1/products
// @Summary Create a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body domain.Product true "Product to create"
// @Success 201 {object} Response "Created product"
// @Failure 409 {object} ErrorResponseBody "Duplicate SKU"
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if err := h.catalogService.CreateProduct(c.Request.Context(), &p); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// GetProduct handles GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if sku := c.Query("sku"); sku != "" {
		p, err := h.catalogService.GetProductBySKU(c.Request.Context(), sku)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, p)
		return
	}

	offset, limit := pagination(c)
	products, total, err := h.catalogService.ListProducts(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	p.ID = id
	if err := h.catalogService.UpdateProduct(c.Request.Context(), &p); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "product deleted"})
}

// CreateCustomer handles POST /api/v1/customers
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var cust domain.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if err := h.catalogService.CreateCustomer(c.Request.Context(), &cust); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, cust)
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cust, err := h.catalogService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cust)
}

// ListCustomers handles GET /api/v1/customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	offset, limit := pagination(c)
	customers, total, err := h.catalogService.ListCustomers(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cust domain.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	cust.ID = id
	if err := h.catalogService.UpdateCustomer(c.Request.Context(), &cust); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cust)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCustomer(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "customer deleted"})
}

// CreateVendor handles POST /api/v1/vendors
func (h *CatalogHandler) CreateVendor(c *gin.Context) {
	var v domain.Vendor
	if err := c.ShouldBindJSON(&v); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if err := h.catalogService.CreateVendor(c.Request.Context(), &v); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, v)
}

// GetVendor handles GET /api/v1/vendors/:id
func (h *CatalogHandler) GetVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.catalogService.GetVendor(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, v)
}

// ListVendors handles GET /api/v1/vendors
func (h *CatalogHandler) ListVendors(c *gin.Context) {
	offset, limit := pagination(c)
	vendors, total, err := h.catalogService.ListVendors(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateVendor handles PUT /api/v1/vendors/:id
func (h *CatalogHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var v domain.Vendor
	if err := c.ShouldBindJSON(&v); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	v.ID = id
	if err := h.catalogService.UpdateVendor(c.Request.Context(), &v); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, v)
}

// DeleteVendor handles DELETE /api/v1/vendors/:id
func (h *CatalogHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteVendor(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "vendor deleted"})
}
