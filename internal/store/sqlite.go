package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/models"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore is a UserStore backed by SQLite. It exists so deployments that
// want accounts to survive a restart can set DATABASE_PATH; the rest of the
// system is unaware which store it is talking to.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// migrate runs the SQL statements to set up the schema.
func migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT,
		email TEXT UNIQUE,
		password_hash TEXT,
		role TEXT NOT NULL DEFAULT 'student',
		ai_usage_count INTEGER NOT NULL DEFAULT 0,
		total_ai_requests INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		last_active DATETIME NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a new user, enforcing email uniqueness.
func (s *SQLiteStore) Create(user models.User) error {
	stmt, err := s.db.Prepare(`INSERT INTO users
		(id, name, email, password_hash, role, ai_usage_count, total_ai_requests, created_at, last_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.AIUsageCount, user.TotalAIRequests, user.CreatedAt, user.LastActive)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateEmail
	}
	return err
}

func (s *SQLiteStore) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var role string
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role,
		&user.AIUsageCount, &user.TotalAIRequests, &user.CreatedAt, &user.LastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.Role = models.Role(role)
	return user, nil
}

const userColumns = "id, name, email, password_hash, role, ai_usage_count, total_ai_requests, created_at, last_active"

// GetByID retrieves a user by ID.
func (s *SQLiteStore) GetByID(id string) (models.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetByEmail retrieves a user by exact email match.
func (s *SQLiteStore) GetByEmail(email string) (models.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// RecordUsage increments the usage counters in a single UPDATE so concurrent
// remix calls never lose an update, then reads back the new count.
func (s *SQLiteStore) RecordUsage(id string, now time.Time) (int, error) {
	res, err := s.db.Exec(`UPDATE users
		SET ai_usage_count = ai_usage_count + 1,
		    total_ai_requests = total_ai_requests + 1,
		    last_active = ?
		WHERE id = ?`, now, id)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	var count int
	err = s.db.QueryRow("SELECT ai_usage_count FROM users WHERE id = ?", id).Scan(&count)
	return count, err
}

// TouchLastActive updates the user's last-active timestamp.
func (s *SQLiteStore) TouchLastActive(id string, now time.Time) error {
	res, err := s.db.Exec("UPDATE users SET last_active = ? WHERE id = ?", now, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRole returns all users with the given role.
func (s *SQLiteStore) ListByRole(role models.Role) ([]models.User, error) {
	rows, err := s.db.Query("SELECT "+userColumns+" FROM users WHERE role = ?", string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var r string
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &r,
			&user.AIUsageCount, &user.TotalAIRequests, &user.CreatedAt, &user.LastActive); err != nil {
			return nil, err
		}
		user.Role = models.Role(r)
		users = append(users, user)
	}
	return users, rows.Err()
}

// HasRole reports whether at least one user with the given role exists.
func (s *SQLiteStore) HasRole(role models.Role) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE role = ?", string(role)).Scan(&count)
	return count > 0, err
}
