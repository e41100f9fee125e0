package models

import "time"

const (
	RoleTenant   = "TENANT"
	RoleLandlord = "LANDLORD"
)

type User struct {
	UID           string    `json:"uid" db:"uid"`
	DisplayName   string    `json:"displayName" db:"display_name"`
	Email         string    `json:"email" db:"email"`
	Token         string    `json:"token,omitempty" db:"token"`
	PhoneNumber   string    `json:"phoneNumber,omitempty" db:"phone_number"`
	Role          string    `json:"role" db:"role"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidRole reports whether s is one of the marketplace roles.
func ValidRole(s string) bool {
	return s == RoleTenant || s == RoleLandlord
}
