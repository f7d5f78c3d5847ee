package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
)

// SyncHandler handles marketplace order sync endpoints.
type SyncHandler struct {
	syncService service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Sync handles POST /api/v1/sync/:channel
// @Summary Sync marketplace orders
// @Description Pull orders from a marketplace API into the local order book; already recorded order items are skipped
// @Tags sync
// @Produce json
// @Param channel path string true "Channel (flipkart or shopify)"
// @Param since query string false "Fetch orders created after this RFC3339 timestamp (default 30 days ago)"
// @Success 200 {object} Response "Sync report"
// @Failure 400 {object} ErrorResponseBody "Unknown channel"
// @Failure 502 {object} ErrorResponseBody "Marketplace API failure"
// @Router /sync/{channel} [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	channel := domain.Channel(c.Param("channel"))

	since := time.Now().UTC().AddDate(0, 0, -30)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC3339")
			return
		}
		since = parsed
	}

	report, err := h.syncService.Sync(c.Request.Context(), channel, since)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Channels handles GET /api/v1/sync/channels
// @Summary List syncable channels
// @Tags sync
// @Produce json
// @Success 200 {object} Response "Configured marketplace channels"
// @Router /sync/channels [get]
func (h *SyncHandler) Channels(c *gin.Context) {
	RespondOK(c, gin.H{"channels": h.syncService.Channels()})
}
