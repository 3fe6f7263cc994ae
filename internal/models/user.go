package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an authenticated caller. Products reference their owning
// user by id only; the reverse listing is a query by foreign key, not a
// back-pointer held here.
type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string                      `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password  string                      `json:"-" gorm:"type:varchar(255);not null" validate:"required,min=6"`
	FullName  string                      `json:"full_name" gorm:"type:varchar(100)" validate:"required,min=1"`
	IsActive  bool                        `json:"is_active" gorm:"default:true"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// BeforeSave canonicalizes the e-mail on insert and update so that lookups
// are exact matches.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	return nil
}
