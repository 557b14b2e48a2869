// Package seed populates demo equipment and bookings for local runs.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"triage-queue-backend/internal/model"
	"triage-queue-backend/internal/store"
)

// Run inserts the demo data set unless equipment already exists. The two
// confirmed MRI bookings demonstrate priority beating arrival order: the
// urgent patient arrived later but heads the queue.
func Run(ctx context.Context, s store.Store, log zerolog.Logger) error {
	count, err := s.CountEquipment(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("equipment", count).Msg("skipping seed, equipment already present")
		return nil
	}

	equipment := []model.Equipment{
		{Name: "MRI-1", Type: "MRI", Status: model.EquipmentAvailable, BufferTime: 60},
		{Name: "CT-Scanner", Type: "CT", Status: model.EquipmentAvailable, BufferTime: 30},
		{Name: "Ventilator-1", Type: "Ventilator", Status: model.EquipmentMaintenance, BufferTime: 1440},
	}
	for i := range equipment {
		if err := s.CreateEquipment(ctx, &equipment[i]); err != nil {
			return err
		}
	}

	mriID := equipment[0].ID
	now := time.Now()
	bookings := []model.Booking{
		{
			PatientName: "John Doe (Normal)",
			EquipmentID: mriID,
			Priority:    model.PriorityNormal,
			Status:      model.BookingConfirmed,
			BookingTime: now.Add(-30 * time.Minute),
		},
		{
			PatientName: "Jane Smith (Urgent)",
			EquipmentID: mriID,
			Priority:    model.PriorityUrgent,
			Status:      model.BookingConfirmed,
			BookingTime: now.Add(-10 * time.Minute),
		},
	}
	for i := range bookings {
		if err := s.CreateBooking(ctx, &bookings[i]); err != nil {
			return err
		}
	}

	log.Info().Msg("demo data initialized")
	return nil
}
