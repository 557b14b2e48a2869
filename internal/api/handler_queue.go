package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"triage-queue-backend/internal/queue"
)

// GetQueue handles the GET /api/queue/:equipment_id request. The response
// is the live queue: confirmed bookings ordered by priority, then arrival.
func (h *Handler) GetQueue(c *gin.Context) {
	equipmentID, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return
	}

	bookings, err := h.engine.Queue(c.Request.Context(), equipmentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CallNext handles the POST /api/queue/:equipment_id/next request. An empty
// queue is a legitimate outcome and maps to 200 with an explicit signal
// rather than an error status.
func (h *Handler) CallNext(c *gin.Context) {
	equipmentID, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return
	}

	booking, err := h.engine.CallNext(c.Request.Context(), equipmentID)
	if errors.Is(err, queue.ErrEmptyQueue) {
		c.JSON(http.StatusOK, gin.H{"emptyQueue": true, "message": "no patient waiting"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, booking)
}
