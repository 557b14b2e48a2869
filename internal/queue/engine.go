// Package queue implements the ordering and equipment-state engine: it
// decides which confirmed booking is next for a machine and drives the
// call/serve transitions for both the booking and the machine.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"triage-queue-backend/internal/metrics"
	"triage-queue-backend/internal/model"
	"triage-queue-backend/internal/store"
)

var (
	// ErrEmptyQueue signals that call-next found nothing waiting. It is a
	// legitimate outcome, not a failure; no state is mutated.
	ErrEmptyQueue = errors.New("no patient waiting")

	// ErrPastSlot rejects a booking whose requested slot time parses and
	// lies in the past.
	ErrPastSlot = errors.New("requested slot time is in the past")

	// ErrInvalidPriority rejects a confirmation with an unknown priority.
	ErrInvalidPriority = errors.New("invalid priority")
)

// Engine holds no state of its own between calls; everything lives in the
// injected store. The clock is a field so tests can pin it.
type Engine struct {
	store store.Store
	locks *equipmentLocks
	now   func() time.Time
	log   zerolog.Logger
}

// NewEngine creates a queue engine on top of the given store.
func NewEngine(s store.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: s,
		locks: newEquipmentLocks(),
		now:   time.Now,
		log:   log.With().Str("component", "queue").Logger(),
	}
}

// SubmitRequest carries a patient's booking request. BookingTime is
// optional; the zero value means "now".
type SubmitRequest struct {
	PatientName string
	EquipmentID int64
	SlotTime    string
	BookingTime time.Time
}

// Submit stores a new booking request. Status is forced to PENDING and
// priority to NORMAL regardless of anything the client sent; priority only
// becomes meaningful at confirmation.
//
// A slot time that fails to parse is tolerated and stored as-is; only a
// parseable slot time strictly before now is rejected.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (model.Booking, error) {
	now := e.now()

	bookingTime := req.BookingTime
	if bookingTime.IsZero() {
		bookingTime = now
	}

	if req.SlotTime != "" {
		if slot, err := time.Parse(time.RFC3339, req.SlotTime); err == nil {
			if slot.Before(now) {
				return model.Booking{}, ErrPastSlot
			}
		}
	}

	booking := model.Booking{
		PatientName: req.PatientName,
		EquipmentID: req.EquipmentID,
		Priority:    model.PriorityNormal,
		SlotTime:    req.SlotTime,
		Status:      model.BookingPending,
		BookingTime: bookingTime,
	}
	if err := e.store.CreateBooking(ctx, &booking); err != nil {
		return model.Booking{}, err
	}

	metrics.IncBookingCreated()
	e.log.Info().Int64("booking_id", booking.ID).Int64("equipment_id", booking.EquipmentID).
		Msg("booking request submitted")
	return booking, nil
}

// PendingBookings lists bookings awaiting administrative confirmation.
func (e *Engine) PendingBookings(ctx context.Context) ([]model.Booking, error) {
	return e.store.BookingsByStatus(ctx, model.BookingPending)
}

// Confirm assigns the administrative priority and moves the booking to
// CONFIRMED. Re-confirming simply overwrites the priority.
func (e *Engine) Confirm(ctx context.Context, bookingID int64, priority model.Priority) (model.Booking, error) {
	if !priority.Valid() {
		return model.Booking{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	booking, err := e.store.BookingByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}

	booking.Priority = priority
	booking.Status = model.BookingConfirmed
	if err := e.store.UpdateBooking(ctx, &booking); err != nil {
		return model.Booking{}, err
	}

	metrics.IncBookingConfirmed(string(priority))
	e.log.Info().Int64("booking_id", booking.ID).Str("priority", string(priority)).
		Msg("booking confirmed")
	return booking, nil
}

// Queue computes the live queue for a machine: CONFIRMED bookings sorted by
// priority rank (highest first), then booking time (earliest first), then
// booking ID. IDs are monotonic, so the order is total.
func (e *Engine) Queue(ctx context.Context, equipmentID int64) ([]model.Booking, error) {
	bookings, err := e.store.BookingsForEquipment(ctx, equipmentID, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	sortQueue(bookings)
	return bookings, nil
}

func sortQueue(bookings []model.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if !a.BookingTime.Equal(b.BookingTime) {
			return a.BookingTime.Before(b.BookingTime)
		}
		return a.ID < b.ID
	})
}

// AvailabilityKind classifies a next-available estimate.
type AvailabilityKind string

const (
	AvailableNow         AvailabilityKind = "now"
	AvailableAt          AvailabilityKind = "at"
	AvailableUnavailable AvailabilityKind = "unavailable"
)

// Availability is the next-available estimate for a machine. At is only set
// when Kind is AvailableAt. The estimate is a coarse linear projection
// (queue length times buffer time), not a scheduling commitment.
type Availability struct {
	Kind AvailabilityKind
	At   time.Time
}

// NextAvailable estimates when a machine frees up. MAINTENANCE machines
// report unavailable regardless of queue contents.
func (e *Engine) NextAvailable(ctx context.Context, equipmentID int64) (Availability, error) {
	equipment, err := e.store.EquipmentByID(ctx, equipmentID)
	if err != nil {
		return Availability{}, err
	}
	queue, err := e.Queue(ctx, equipmentID)
	if err != nil {
		return Availability{}, err
	}
	return e.estimate(equipment, len(queue)), nil
}

// estimate ignores the in-progress patient's remaining time and assumes
// every queued booking consumes one full buffer interval.
func (e *Engine) estimate(equipment model.Equipment, queueLength int) Availability {
	if equipment.Status == model.EquipmentMaintenance {
		return Availability{Kind: AvailableUnavailable}
	}
	if queueLength == 0 {
		return Availability{Kind: AvailableNow}
	}
	at := e.now().Add(time.Duration(queueLength) * equipment.BufferDuration())
	return Availability{Kind: AvailableAt, At: at}
}

// EquipmentOverview is an equipment record annotated with the computed
// queue length and next-available estimate. The annotations are derived on
// read and never persisted.
type EquipmentOverview struct {
	model.Equipment
	QueueLength   int
	NextAvailable Availability
}

// ListEquipment returns every machine with its computed queue fields.
func (e *Engine) ListEquipment(ctx context.Context) ([]EquipmentOverview, error) {
	equipment, err := e.store.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]EquipmentOverview, 0, len(equipment))
	for _, eq := range equipment {
		queue, err := e.Queue(ctx, eq.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, EquipmentOverview{
			Equipment:     eq,
			QueueLength:   len(queue),
			NextAvailable: e.estimate(eq, len(queue)),
		})
	}
	return overviews, nil
}

// CallNext promotes the head of a machine's queue to IN_USE and flips the
// machine to IN_USE. The whole read-pick-update sequence runs under the
// machine's lock so two concurrent calls cannot select the same head, and
// both writes commit in one transaction.
func (e *Engine) CallNext(ctx context.Context, equipmentID int64) (model.Booking, error) {
	lock := e.locks.forEquipment(equipmentID)
	lock.Lock()
	defer lock.Unlock()

	queue, err := e.Queue(ctx, equipmentID)
	if err != nil {
		return model.Booking{}, err
	}
	if len(queue) == 0 {
		metrics.IncEmptyQueueCall()
		return model.Booking{}, ErrEmptyQueue
	}

	head := queue[0]
	head.Status = model.BookingInUse

	err = e.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.UpdateBooking(ctx, &head); err != nil {
			return err
		}
		return e.setEquipmentStatus(ctx, tx, equipmentID, model.EquipmentInUse)
	})
	if err != nil {
		return model.Booking{}, err
	}

	metrics.IncBookingCalled()
	e.log.Info().Int64("booking_id", head.ID).Int64("equipment_id", equipmentID).
		Str("priority", string(head.Priority)).Msg("patient called")
	return head, nil
}

// MarkServed completes a procedure: the booking becomes SERVED (terminal)
// and its machine returns to AVAILABLE. A dangling equipment reference is
// logged and tolerated; the booking is still marked served.
func (e *Engine) MarkServed(ctx context.Context, bookingID int64) error {
	booking, err := e.store.BookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	lock := e.locks.forEquipment(booking.EquipmentID)
	lock.Lock()
	defer lock.Unlock()

	booking.Status = model.BookingServed
	err = e.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.UpdateBooking(ctx, &booking); err != nil {
			return err
		}
		return e.setEquipmentStatus(ctx, tx, booking.EquipmentID, model.EquipmentAvailable)
	})
	if err != nil {
		return err
	}

	metrics.IncBookingServed()
	e.log.Info().Int64("booking_id", booking.ID).Int64("equipment_id", booking.EquipmentID).
		Msg("patient served")
	return nil
}

// setEquipmentStatus updates a machine's operational status, tolerating a
// missing machine. MAINTENANCE is set administratively outside the booking
// flow and is never overwritten here.
func (e *Engine) setEquipmentStatus(ctx context.Context, tx store.Store, equipmentID int64, status model.EquipmentStatus) error {
	equipment, err := tx.EquipmentByID(ctx, equipmentID)
	if errors.Is(err, store.ErrNotFound) {
		e.log.Warn().Int64("equipment_id", equipmentID).
			Msg("booking references unknown equipment; skipping status update")
		return nil
	}
	if err != nil {
		return err
	}
	if equipment.Status == model.EquipmentMaintenance {
		return nil
	}
	equipment.Status = status
	return tx.UpdateEquipment(ctx, &equipment)
}
