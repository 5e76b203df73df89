package responses

import "time"

type UserProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	LicenseNumber  string    `json:"licenseNumber,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LoginUser struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
