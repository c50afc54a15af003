package models

import "time"

// ServiceStatus is the state of a live detailing job.
type ServiceStatus string

const (
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
)

// Valid reports whether the status is a known value.
func (s ServiceStatus) Valid() bool {
	return s == ServiceInProgress || s == ServiceCompleted
}

// OngoingService is a live job record shown on the staff dashboard.
type OngoingService struct {
	Base
	TenantID         string        `gorm:"not null;index:idx_services_tenant_status" json:"tenant_id"`
	ClientID         string        `gorm:"not null;index" json:"client_id"`
	VehicleID        string        `gorm:"not null;index" json:"vehicle_id"`
	ServiceName      string        `gorm:"not null" json:"service_name"`
	AssignedStaff    string        `gorm:"not null" json:"assigned_staff"`
	Status           ServiceStatus `gorm:"not null;index:idx_services_tenant_status" json:"status"`
	StartTime        time.Time     `gorm:"not null" json:"start_time"`
	EstimatedEndTime time.Time     `gorm:"not null" json:"estimated_end_time"`
}

// TableName specifies the table name for the OngoingService model
func (OngoingService) TableName() string {
	return "ongoing_services"
}
