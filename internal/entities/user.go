package entities

import "time"

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// DefaultRole is assigned at registration when no role is supplied.
const DefaultRole = RoleUser

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:100;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt hash, never plaintext
	Role      Role   `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
