package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triage-queue-backend/internal/model"
	"triage-queue-backend/internal/queue"
)

// EquipmentResponse is an equipment record annotated with the computed
// queue length and next-available estimate.
type EquipmentResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	Type          string                `json:"type"`
	Status        model.EquipmentStatus `json:"status"`
	BufferTime    int                   `json:"bufferTime"`
	QueueLength   int                   `json:"queueLength"`
	NextAvailable string                `json:"nextAvailable"`
}

// GetEquipment handles the GET /api/equipment request.
func (h *Handler) GetEquipment(c *gin.Context) {
	overviews, err := h.engine.ListEquipment(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	responses := make([]EquipmentResponse, 0, len(overviews))
	for _, o := range overviews {
		responses = append(responses, EquipmentResponse{
			ID:            o.ID,
			Name:          o.Name,
			Type:          o.Type,
			Status:        o.Status,
			BufferTime:    o.BufferTime,
			QueueLength:   o.QueueLength,
			NextAvailable: formatAvailability(o.NextAvailable),
		})
	}
	c.JSON(http.StatusOK, responses)
}

func formatAvailability(a queue.Availability) string {
	switch a.Kind {
	case queue.AvailableNow:
		return "now"
	case queue.AvailableUnavailable:
		return "unavailable"
	default:
		return a.At.Format(time.RFC3339)
	}
}
