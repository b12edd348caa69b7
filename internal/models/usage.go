package models

import "time"

// UsageLogEntry records a single successful AI remix. Only a truncated
// preview of the original content is kept, never the full text.
type UsageLogEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	UserEmail      string    `json:"userEmail"`
	RemixType      string    `json:"remixType"`
	AssignmentID   string    `json:"assignmentId,omitempty"`
	ContentPreview string    `json:"contentPreview"`
	ContentLength  int       `json:"contentLength"`
	Timestamp      time.Time `json:"timestamp"`
}
