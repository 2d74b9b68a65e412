package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wellbeing-backend/internal/shared/server/respond"
)

const maxListLimit = 500

// Handler exposes the provider call log.
type Handler struct {
	Store Store
}

// NewHandler constructs a Handler.
func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// RegisterDevRoutes attaches dev-only audit routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.GET("/provider-calls", h.listProviderCalls)
}

func (h *Handler) listProviderCalls(c *gin.Context) {
	limit := DefaultListLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = min(parsed, maxListLimit)
	}

	calls, err := h.Store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list provider calls", nil)
		return
	}
	respond.OK(c, gin.H{"items": calls})
}
