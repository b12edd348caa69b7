package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must satisfy the same contract, so the suite runs
// against each.
func forEachStore(t *testing.T, run func(t *testing.T, s UserStore)) {
	t.Run("memory", func(t *testing.T) {
		run(t, NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer s.Close()
		run(t, s)
	})
}

func testUser(id, email string, role models.Role) models.User {
	now := time.Now().UTC().Truncate(time.Second)
	return models.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    now,
		LastActive:   now,
	}
}

func TestCreateAndLookup(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		user := testUser("u1", "a@x.com", models.RoleStudent)
		require.NoError(t, s.Create(user))

		byID, err := s.GetByID("u1")
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)
		assert.Equal(t, models.RoleStudent, byID.Role)

		byEmail, err := s.GetByEmail("a@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = s.GetByID("missing")
		assert.ErrorIs(t, err, ErrNotFound)

		// Lookups are exact-match: a different case is a different email.
		_, err = s.GetByEmail("A@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDuplicateEmail(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		require.NoError(t, s.Create(testUser("u1", "a@x.com", models.RoleStudent)))

		err := s.Create(testUser("u2", "a@x.com", models.RoleStudent))
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		// The first registration is unaffected.
		first, err := s.GetByEmail("a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", first.ID)
	})
}

func TestRecordUsage(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		require.NoError(t, s.Create(testUser("u1", "a@x.com", models.RoleStudent)))

		now := time.Now().UTC().Truncate(time.Second)
		count, err := s.RecordUsage("u1", now)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = s.RecordUsage("u1", now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		user, err := s.GetByID("u1")
		require.NoError(t, err)
		assert.Equal(t, 2, user.AIUsageCount)
		assert.Equal(t, 2, user.TotalAIRequests)
		assert.False(t, user.LastActive.Before(now))

		_, err = s.RecordUsage("missing", now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTouchLastActive(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		require.NoError(t, s.Create(testUser("u1", "a@x.com", models.RoleStudent)))

		later := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		require.NoError(t, s.TouchLastActive("u1", later))

		user, err := s.GetByID("u1")
		require.NoError(t, err)
		assert.Equal(t, later.Unix(), user.LastActive.Unix())

		assert.ErrorIs(t, s.TouchLastActive("missing", later), ErrNotFound)
	})
}

func TestListByRoleAndHasRole(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		require.NoError(t, s.Create(testUser("s1", "s1@x.com", models.RoleStudent)))
		require.NoError(t, s.Create(testUser("s2", "s2@x.com", models.RoleStudent)))
		require.NoError(t, s.Create(testUser("t1", "t1@x.com", models.RoleAdmin)))

		students, err := s.ListByRole(models.RoleStudent)
		require.NoError(t, err)
		assert.Len(t, students, 2)
		for _, student := range students {
			assert.Equal(t, models.RoleStudent, student.Role)
		}

		hasAdmin, err := s.HasRole(models.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, hasAdmin)
	})
}

func TestHasRoleEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, s UserStore) {
		hasAdmin, err := s.HasRole(models.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, hasAdmin)
	})
}
