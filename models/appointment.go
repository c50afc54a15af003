package models

import "time"

// AppointmentStatus is the lifecycle state of a scheduled appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// AppointmentDuration is the fixed slot length; EndTime is always derived
// from StartTime and never settable by callers.
const AppointmentDuration = 2 * time.Hour

// Appointment books a time slot for an approved estimate.
type Appointment struct {
	Base
	TenantID    string            `gorm:"not null;index" json:"tenant_id"`
	EstimateID  string            `gorm:"not null;index" json:"estimate_id"`
	Estimate    Estimate          `gorm:"foreignKey:EstimateID" json:"-"`
	StartTime   time.Time         `gorm:"not null" json:"start_time"`
	EndTime     time.Time         `gorm:"not null" json:"end_time"`
	Status      AppointmentStatus `gorm:"not null;default:'scheduled'" json:"status"`
	DepositPaid bool              `gorm:"not null;default:false" json:"deposit_paid"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
