package models

// VehicleSize is the size category that selects a price multiplier.
type VehicleSize string

const (
	SizeSmall  VehicleSize = "small"
	SizeMedium VehicleSize = "medium"
	SizeLarge  VehicleSize = "large"
)

// Valid reports whether the size is one of the three known categories.
func (s VehicleSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Vehicle belongs to a client and carries the size category used by pricing.
type Vehicle struct {
	Base
	TenantID string      `gorm:"not null;index" json:"tenant_id"`
	ClientID string      `gorm:"not null;index" json:"client_id"`
	Client   Client      `gorm:"foreignKey:ClientID" json:"-"`
	Make     string      `gorm:"not null" json:"make"`
	Model    string      `gorm:"not null" json:"model"`
	Year     int         `gorm:"not null" json:"year"`
	Size     VehicleSize `gorm:"not null" json:"size"`
}

// TableName specifies the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
