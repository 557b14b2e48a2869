package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"triage-queue-backend/internal/model"
)

var testDBSeq atomic.Int64

func newTestStore(t *testing.T) Store {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Equipment{}, &model.Booking{}))
	return NewGormStore(db)
}

func TestBookingCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := model.Booking{
		PatientName: "John Doe",
		EquipmentID: 1,
		Priority:    model.PriorityNormal,
		Status:      model.BookingPending,
		BookingTime: time.Now(),
	}
	require.NoError(t, s.CreateBooking(ctx, &b))
	assert.NotZero(t, b.ID, "store assigns the identifier")

	fetched, err := s.BookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", fetched.PatientName)

	fetched.Status = model.BookingConfirmed
	fetched.Priority = model.PriorityUrgent
	require.NoError(t, s.UpdateBooking(ctx, &fetched))

	updated, err := s.BookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, updated.Status)
	assert.Equal(t, model.PriorityUrgent, updated.Priority)
}

func TestBookingByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.BookingByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	seedBooking := func(equipmentID int64, status model.BookingStatus) model.Booking {
		b := model.Booking{
			PatientName: "Patient",
			EquipmentID: equipmentID,
			Priority:    model.PriorityNormal,
			Status:      status,
			BookingTime: now,
		}
		require.NoError(t, s.CreateBooking(ctx, &b))
		return b
	}

	pending := seedBooking(1, model.BookingPending)
	confirmedA := seedBooking(1, model.BookingConfirmed)
	confirmedB := seedBooking(2, model.BookingConfirmed)
	seedBooking(1, model.BookingServed)

	byStatus, err := s.BookingsByStatus(ctx, model.BookingPending)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, pending.ID, byStatus[0].ID)

	forEquipment, err := s.BookingsForEquipment(ctx, 1, model.BookingConfirmed)
	require.NoError(t, err)
	require.Len(t, forEquipment, 1)
	assert.Equal(t, confirmedA.ID, forEquipment[0].ID)

	forOther, err := s.BookingsForEquipment(ctx, 2, model.BookingConfirmed)
	require.NoError(t, err)
	require.Len(t, forOther, 1)
	assert.Equal(t, confirmedB.ID, forOther[0].ID)
}

func TestEquipmentCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := model.Equipment{Name: "CT-Scanner", Type: "CT", Status: model.EquipmentAvailable, BufferTime: 30}
	require.NoError(t, s.CreateEquipment(ctx, &e))
	assert.NotZero(t, e.ID)

	_, err := s.EquipmentByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	fetched, err := s.EquipmentByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentAvailable, fetched.Status)

	fetched.Status = model.EquipmentInUse
	require.NoError(t, s.UpdateEquipment(ctx, &fetched))

	all, err := s.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.EquipmentInUse, all[0].Status)

	count, err := s.CountEquipment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := model.Equipment{Name: "MRI-1", Type: "MRI", Status: model.EquipmentAvailable, BufferTime: 60}
	require.NoError(t, s.CreateEquipment(ctx, &e))

	boom := errors.New("boom")
	err := s.Transact(ctx, func(tx Store) error {
		eq, err := tx.EquipmentByID(ctx, e.ID)
		if err != nil {
			return err
		}
		eq.Status = model.EquipmentInUse
		if err := tx.UpdateEquipment(ctx, &eq); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	fetched, err := s.EquipmentByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentAvailable, fetched.Status, "rolled-back write must not be visible")
}
