package models

type LoginResponse struct {
	UID           string `json:"uid"`
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	Token         string `json:"token"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}
