package models

import "time"

// Role classifies an account. Teachers register with an access code and are
// stored as admins; everyone else is a student.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Never expose this to the client
	Role            Role      `json:"role"`
	AIUsageCount    int       `json:"aiUsageCount"`
	TotalAIRequests int       `json:"totalAIRequests"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActive      time.Time `json:"lastActive"`
}
