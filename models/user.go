package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleTechnician UserRole = "technician"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	FullName     string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	AvatarURL    string    `json:"avatarUrl" gorm:"size:512"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','technician','admin')"`
	RegisteredAt time.Time `json:"registeredAt" gorm:"not null"`
	Address      string    `json:"address,omitempty" gorm:"type:text"`
	ContactPhone string    `json:"contactPhone,omitempty" gorm:"size:20"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"-" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RoleTechnician, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsTechnician checks if the user is a technician
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// UserProfileUpdate represents the request structure for patching a profile.
// Nil fields are left untouched.
type UserProfileUpdate struct {
	FullName     *string `json:"name"`
	AvatarURL    *string `json:"avatarUrl"`
	Address      *string `json:"address"`
	ContactPhone *string `json:"contactPhone"`
}
