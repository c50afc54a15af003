package models

// MessageSender identifies which side of the conversation wrote a message.
// It is derived from the caller's role, never taken from the request body.
type MessageSender string

const (
	SenderTenant MessageSender = "tenant"
	SenderClient MessageSender = "client"
)

// Message is one entry in the tenant/client conversation. Messages are
// append-only and listed ascending by creation time.
type Message struct {
	Base
	TenantID string        `gorm:"not null;index:idx_messages_tenant_client" json:"tenant_id"`
	ClientID string        `gorm:"not null;index:idx_messages_tenant_client" json:"client_id"`
	Client   Client        `gorm:"foreignKey:ClientID" json:"-"`
	Content  string        `gorm:"type:text;not null" json:"content"`
	Sender   MessageSender `gorm:"not null" json:"sender"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
