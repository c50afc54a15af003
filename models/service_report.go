package models

// ServiceReport is the generated end-of-job document for an assessment.
// Immutable once generated; the PDF itself lives in blob storage.
type ServiceReport struct {
	Base
	TenantID          string   `gorm:"not null;index" json:"tenant_id"`
	ClientID          string   `gorm:"not null;index" json:"client_id"`
	VehicleID         string   `gorm:"not null" json:"vehicle_id"`
	AssessmentID      string   `gorm:"not null;index" json:"assessment_id"`
	ServicesPerformed []string `gorm:"serializer:json" json:"services_performed"`
	TotalCost         float64  `gorm:"not null" json:"total_cost"`
	ReportS3Key       string   `gorm:"not null" json:"report_s3_key"`
	ReportURL         string   `gorm:"-" json:"report_url,omitempty"` // computed, presigned
}

// TableName specifies the table name for the ServiceReport model
func (ServiceReport) TableName() string {
	return "service_reports"
}
