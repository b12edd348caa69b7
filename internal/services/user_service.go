package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// teacherCodePrefix grants the admin role to any access code that begins
// with it, case-insensitively. The match is prefix-only: "TEACHERLESS" is
// accepted just like "TEACHER123".
const teacherCodePrefix = "TEACHER"

const minPasswordLength = 6

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, email, password, accessCode string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for accounts.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a new UserService on top of a user store.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Register validates the input, hashes the password and stores a new user.
// The plaintext password is never persisted.
func (s *UserService) Register(name, email, password, accessCode string) (models.User, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return models.User{}, &MissingFieldError{Field: "name"}
	case strings.TrimSpace(email) == "":
		return models.User{}, &MissingFieldError{Field: "email"}
	case password == "":
		return models.User{}, &MissingFieldError{Field: "password"}
	}
	if len(password) < minPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	role := models.RoleStudent
	if accessCode != "" && strings.HasPrefix(strings.ToUpper(accessCode), teacherCodePrefix) {
		role = models.RoleAdmin
	}

	now := time.Now()
	user := models.User{
		// V7 UUIDs are time-ordered, which keeps IDs opaque but sortable
		// by creation time.
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    now,
		LastActive:   now,
	}

	if err := s.users.Create(user); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials and bumps lastActive.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.TouchLastActive(user.ID, now); err != nil {
		return models.User{}, err
	}
	user.LastActive = now

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	return s.users.GetByID(id)
}
