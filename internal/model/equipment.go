package model

import "time"

// EquipmentStatus is the operational state of a machine.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentInUse       EquipmentStatus = "IN_USE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
)

// Equipment represents a shared machine (MRI, CT, ventilator, ...).
// BufferTime is the expected occupancy per procedure, in minutes; it is
// used only for next-available estimation.
type Equipment struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:128;not null" json:"name"`
	Type       string          `gorm:"size:64;not null" json:"type"`
	Status     EquipmentStatus `gorm:"size:32;not null" json:"status"`
	BufferTime int             `gorm:"not null" json:"bufferTime"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}

// BufferDuration returns the buffer time as a duration.
func (e Equipment) BufferDuration() time.Duration {
	return time.Duration(e.BufferTime) * time.Minute
}
