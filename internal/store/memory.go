package store

import (
	"sync"
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/models"
)

// MemoryStore is the default UserStore: plain maps guarded by a mutex.
// Handlers run on parallel goroutines, so every mutation takes the lock to
// keep the single-writer-per-record guarantee.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	byEmail map[string]string // email -> user ID, exact-match only
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user, enforcing email uniqueness.
func (s *MemoryStore) Create(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return nil
}

// GetByID retrieves a user by ID.
func (s *MemoryStore) GetByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// GetByEmail retrieves a user by exact email match.
func (s *MemoryStore) GetByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[id], nil
}

// RecordUsage increments the usage counters as a single locked step so
// concurrent remix calls from the same user never lose an update.
func (s *MemoryStore) RecordUsage(id string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return 0, ErrNotFound
	}
	user.AIUsageCount++
	user.TotalAIRequests++
	user.LastActive = now
	s.users[id] = user
	return user.AIUsageCount, nil
}

// TouchLastActive updates the user's last-active timestamp.
func (s *MemoryStore) TouchLastActive(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.LastActive = now
	s.users[id] = user
	return nil
}

// ListByRole returns all users with the given role.
func (s *MemoryStore) ListByRole(role models.Role) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, user := range s.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

// HasRole reports whether at least one user with the given role exists.
func (s *MemoryStore) HasRole(role models.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Role == role {
			return true, nil
		}
	}
	return false, nil
}
