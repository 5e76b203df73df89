package models

import "time"

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID    string
	Role      string
	SessionID string
}
