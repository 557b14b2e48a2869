package model

import "time"

// BookingStatus is the lifecycle state of a booking. Transitions are
// strictly forward: PENDING -> CONFIRMED -> IN_USE -> SERVED.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingInUse     BookingStatus = "IN_USE"
	BookingServed    BookingStatus = "SERVED"
)

// Booking represents one patient's request for one machine.
//
// SlotTime is kept as the raw string the client sent; it is informational
// and only validated when it parses as a timestamp. BookingTime is the
// arrival order used as the tie-break within a priority class.
type Booking struct {
	ID          int64         `gorm:"primaryKey" json:"id"`
	PatientName string        `gorm:"size:256;not null" json:"patientName"`
	EquipmentID int64         `gorm:"index;not null" json:"equipmentId"`
	Priority    Priority      `gorm:"size:32;not null" json:"priority"`
	SlotTime    string        `gorm:"size:64" json:"slotTime,omitempty"`
	Status      BookingStatus `gorm:"size:32;not null;index" json:"status"`
	BookingTime time.Time     `gorm:"not null" json:"bookingTime"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`
}
