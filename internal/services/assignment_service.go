package services

import (
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/models"
)

// AssignmentServiceProvider defines the interface for assignment lookups.
type AssignmentServiceProvider interface {
	GetByID(id string) (models.Assignment, bool)
	ListForRole(role models.Role) []models.Assignment
}

// AssignmentService serves the static assignment table. Assignments are
// reference data: consulted by the remix policy check, never written.
type AssignmentService struct {
	assignments []models.Assignment
}

// NewAssignmentService creates an assignment service with the seed table.
func NewAssignmentService() *AssignmentService {
	base := time.Now()
	return &AssignmentService{
		assignments: []models.Assignment{
			{
				ID:          "essay-industrial-revolution",
				Name:        "Essay: The Industrial Revolution",
				Deadline:    base.AddDate(0, 0, 14),
				AIAllowed:   false,
				Description: "A five-paragraph essay written entirely in your own words.",
			},
			{
				ID:          "blog-science-fair",
				Name:        "Blog Post: Science Fair Project",
				Deadline:    base.AddDate(0, 0, 7),
				AIAllowed:   true,
				Description: "Document your project. AI tools may be used for editing and structure.",
			},
			{
				ID:          "summary-chapter-5",
				Name:        "Reading Summary: Chapter 5",
				Deadline:    base.AddDate(0, 0, 3),
				AIAllowed:   true,
				Description: "Summarize the assigned chapter in your own voice; AI may help condense notes.",
			},
			{
				ID:          "poem-original",
				Name:        "Original Poem",
				Deadline:    base.AddDate(0, 0, 21),
				AIAllowed:   false,
				Description: "Creative writing must be your own. AI assistance is disabled.",
			},
			{
				ID:          "presentation-career-day",
				Name:        "Presentation: Career Day",
				Deadline:    base.AddDate(0, 1, 0),
				AIAllowed:   true,
				Description: "Prepare a short talk. AI may be used to rework your outline.",
			},
		},
	}
}

// GetByID resolves an assignment for the remix policy check.
func (s *AssignmentService) GetByID(id string) (models.Assignment, bool) {
	for _, a := range s.assignments {
		if a.ID == id {
			return a, true
		}
	}
	return models.Assignment{}, false
}

// ListForRole returns the assignment table for students. Teachers manage
// assignments elsewhere, so admins get an empty list.
func (s *AssignmentService) ListForRole(role models.Role) []models.Assignment {
	if role == models.RoleAdmin {
		return []models.Assignment{}
	}
	out := make([]models.Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}
