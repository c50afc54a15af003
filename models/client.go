package models

// Client is a tenant-scoped customer contact.
type Client struct {
	Base
	TenantID string `gorm:"not null;index" json:"tenant_id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
