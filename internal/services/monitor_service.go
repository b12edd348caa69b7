package services

import (
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/store"
)

// ActiveWindow is how recently a student must have acted to count as active.
const ActiveWindow = 5 * time.Minute

// RecentActivity summarizes a student's most recent remix.
type RecentActivity struct {
	RemixType string    `json:"remixType"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentSummary is a dashboard-ready view of one student.
type StudentSummary struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	UsageCount     int             `json:"usageCount"`
	TotalRequests  int             `json:"totalRequests"`
	LastActive     time.Time       `json:"lastActive"`
	IsActive       bool            `json:"isActive"`
	RecentActivity *RecentActivity `json:"recentActivity,omitempty"`
}

// ActivityStats are the class-wide totals shown on the teacher dashboard.
type ActivityStats struct {
	TotalStudents      int     `json:"totalStudents"`
	ActiveNow          int     `json:"activeNow"`
	UsageLogSize       int     `json:"usageLogSize"`
	AvgUsagePerStudent float64 `json:"avgUsagePerStudent"`
}

// ActivitySnapshot is the full monitoring view.
type ActivitySnapshot struct {
	Students []StudentSummary `json:"students"`
	Stats    ActivityStats    `json:"stats"`
}

// MonitorServiceProvider defines the interface for the monitoring aggregator.
type MonitorServiceProvider interface {
	StudentSummaries() ([]StudentSummary, error)
	Snapshot() (ActivitySnapshot, error)
}

// MonitorService derives teacher-facing statistics from the user store and
// the usage log. Nothing is cached; every call computes a fresh view.
type MonitorService struct {
	users    store.UserStore
	usageLog *ledger.Ledger
	window   time.Duration
}

// NewMonitorService creates a MonitorService with the default recency window.
func NewMonitorService(users store.UserStore, usageLog *ledger.Ledger) *MonitorService {
	return &MonitorService{users: users, usageLog: usageLog, window: ActiveWindow}
}

// StudentSummaries returns a summary per student account. Teacher accounts
// are excluded.
func (s *MonitorService) StudentSummaries() ([]StudentSummary, error) {
	students, err := s.users.ListByRole(models.RoleStudent)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summaries := make([]StudentSummary, 0, len(students))
	for _, student := range students {
		summary := StudentSummary{
			ID:            student.ID,
			Name:          student.Name,
			Email:         student.Email,
			UsageCount:    student.AIUsageCount,
			TotalRequests: student.TotalAIRequests,
			LastActive:    student.LastActive,
			IsActive:      now.Sub(student.LastActive) <= s.window,
		}
		if entry, ok := s.usageLog.RecentForUser(student.ID); ok {
			summary.RecentActivity = &RecentActivity{
				RemixType: entry.RemixType,
				Timestamp: entry.Timestamp,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Snapshot returns the per-student summaries together with class totals.
// The average is defined as zero when there are no students.
func (s *MonitorService) Snapshot() (ActivitySnapshot, error) {
	summaries, err := s.StudentSummaries()
	if err != nil {
		return ActivitySnapshot{}, err
	}

	stats := ActivityStats{
		TotalStudents: len(summaries),
		UsageLogSize:  s.usageLog.Len(),
	}
	var totalUsage int
	for _, summary := range summaries {
		if summary.IsActive {
			stats.ActiveNow++
		}
		totalUsage += summary.UsageCount
	}
	if stats.TotalStudents > 0 {
		stats.AvgUsagePerStudent = float64(totalUsage) / float64(stats.TotalStudents)
	}

	return ActivitySnapshot{Students: summaries, Stats: stats}, nil
}
