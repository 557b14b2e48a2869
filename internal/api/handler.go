package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"triage-queue-backend/internal/queue"
	"triage-queue-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine *queue.Engine
	cache  *cache.Cache
}

// NewHandler creates a new API handler. The cache store is the one backing
// the GET caching middleware; mutating handlers flush it.
func NewHandler(engine *queue.Engine, cacheStore *cache.Cache) *Handler {
	return &Handler{
		engine: engine,
		cache:  cacheStore,
	}
}

// abortWithError maps engine/store error kinds onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, queue.ErrPastSlot), errors.Is(err, queue.ErrInvalidPriority):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// flushCache drops cached GET responses after a state change so queue
// lengths and availability estimates recompute on the next read.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}
