package models

// EstimateStatus is the lifecycle state of a quote.
type EstimateStatus string

const (
	EstimatePending  EstimateStatus = "pending"
	EstimateApproved EstimateStatus = "approved"
	EstimateRejected EstimateStatus = "rejected"
)

// Estimate is a priced quote for a set of services on a specific vehicle.
// The total is computed once at creation and never recomputed.
type Estimate struct {
	Base
	TenantID   string         `gorm:"not null;index" json:"tenant_id"`
	ClientID   string         `gorm:"not null;index" json:"client_id"`
	Client     Client         `gorm:"foreignKey:ClientID" json:"client"`
	VehicleID  string         `gorm:"not null;index" json:"vehicle_id"`
	Vehicle    Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle"`
	Services   []string       `gorm:"serializer:json" json:"services"`
	TotalPrice float64        `gorm:"not null" json:"total_price"`
	Status     EstimateStatus `gorm:"not null;default:'pending'" json:"status"`
}

// TableName specifies the table name for the Estimate model
func (Estimate) TableName() string {
	return "estimates"
}
