package models

import "time"

// Assignment is static reference data consulted by the remix flow. When
// AIAllowed is false, remix requests targeting the assignment are refused.
type Assignment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Deadline    time.Time `json:"deadline"`
	AIAllowed   bool      `json:"aiAllowed"`
	Description string    `json:"description"`
}
