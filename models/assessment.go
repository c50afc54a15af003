package models

// VehicleAssessment stores the AI-generated evaluation of an uploaded vehicle
// photo. Rows are immutable once created; the embedding is an opaque vector
// produced by the external model and only used for similarity search.
type VehicleAssessment struct {
	Base
	TenantID            string    `gorm:"not null;index" json:"tenant_id"`
	ClientID            string    `gorm:"not null;index" json:"client_id"`
	VehicleID           string    `gorm:"not null;index" json:"vehicle_id"`
	ImageS3Key          string    `gorm:"not null" json:"image_s3_key"`
	ImageURL            string    `gorm:"-" json:"image_url,omitempty"` // computed, presigned
	Description         string    `gorm:"type:text;not null" json:"description"`
	Condition           string    `gorm:"not null" json:"condition"`
	RecommendedServices []string  `gorm:"serializer:json" json:"recommended_services"`
	Embedding           []float64 `gorm:"serializer:json" json:"-"`
}

// TableName specifies the table name for the VehicleAssessment model
func (VehicleAssessment) TableName() string {
	return "vehicle_assessments"
}
