package models

// User is a provisioned profile for an identity-provider subject.
// Authorization never reads this row; the role column is a display copy of
// the claim the user signed up with.
type User struct {
	Base
	SubjectID string `gorm:"uniqueIndex;not null" json:"subject_id"` // identity provider 'sub' claim
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Role      string `gorm:"not null;default:'member'" json:"role"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
