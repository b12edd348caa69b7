package store

import (
	"errors"
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/models"
)

// ErrNotFound is returned when a user record does not exist.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore abstracts user persistence so a backing database can be swapped
// in without touching the services. All state lives for the process lifetime
// only; durability across restarts is explicitly not provided.
type UserStore interface {
	Create(user models.User) error
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	// RecordUsage atomically increments the user's usage counters, bumps
	// lastActive to now, and returns the new AI usage count.
	RecordUsage(id string, now time.Time) (int, error)
	TouchLastActive(id string, now time.Time) error
	ListByRole(role models.Role) ([]models.User, error)
	HasRole(role models.Role) (bool, error)
}
