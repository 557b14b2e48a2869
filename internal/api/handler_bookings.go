package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"triage-queue-backend/internal/model"
	"triage-queue-backend/internal/queue"
)

// createBookingRequest is the client payload for a new booking. Priority
// and status fields are deliberately absent: both are server-assigned.
type createBookingRequest struct {
	PatientName string     `json:"patientName" binding:"required"`
	EquipmentID int64      `json:"equipmentId" binding:"required"`
	SlotTime    string     `json:"slotTime"`
	BookingTime *time.Time `json:"bookingTime"`
}

// CreateBooking handles the POST /api/bookings request.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submit := queue.SubmitRequest{
		PatientName: req.PatientName,
		EquipmentID: req.EquipmentID,
		SlotTime:    req.SlotTime,
	}
	if req.BookingTime != nil {
		submit.BookingTime = *req.BookingTime
	}

	booking, err := h.engine.Submit(c.Request.Context(), submit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, booking)
}

// GetPendingBookings handles the GET /api/bookings/pending request.
func (h *Handler) GetPendingBookings(c *gin.Context) {
	bookings, err := h.engine.PendingBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type confirmBookingRequest struct {
	AssignedPriority model.Priority `json:"assignedPriority" binding:"required"`
}

// ConfirmBooking handles the POST /api/bookings/:id/confirm request.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.engine.Confirm(c.Request.Context(), id, req.AssignedPriority)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, booking)
}

// ServeBooking handles the POST /api/bookings/:id/serve request.
func (h *Handler) ServeBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	if err := h.engine.MarkServed(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"status": "served"})
}
