package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nextlogicai/nextlogic-be/internal/ai"
	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/store"
	"github.com/nextlogicai/nextlogic-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// previewLength bounds the stored prefix of the original content. The full
// text is never persisted.
const previewLength = 100

// ContentGenerator produces text for a prompt. Implemented by ai.Client;
// tests substitute stubs.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RemixResult is the outcome of a successful remix call.
type RemixResult struct {
	Output     string `json:"output"`
	UsageCount int    `json:"usageCount"`
}

// RemixServiceProvider defines the interface for the remix orchestrator.
type RemixServiceProvider interface {
	Remix(ctx context.Context, user models.User, content, remixType, assignmentID string) (RemixResult, error)
}

// RemixService brokers content-transformation requests to the upstream
// provider and records successful invocations.
type RemixService struct {
	users       store.UserStore
	usageLog    *ledger.Ledger
	assignments AssignmentServiceProvider
	generator   ContentGenerator
	hub         *websocket.Hub
}

// NewRemixService creates a RemixService. A nil generator means the upstream
// credential is missing; remix calls then degrade to a service-unavailable
// error instead of crashing.
func NewRemixService(users store.UserStore, usageLog *ledger.Ledger, assignments AssignmentServiceProvider, generator ContentGenerator, hub *websocket.Hub) *RemixService {
	return &RemixService{
		users:       users,
		usageLog:    usageLog,
		assignments: assignments,
		generator:   generator,
		hub:         hub,
	}
}

// Remix validates the request, applies the assignment policy, calls the
// upstream provider and records the outcome. A failed or blocked request
// never appears in the usage log and never increments counters.
func (s *RemixService) Remix(ctx context.Context, user models.User, content, remixType, assignmentID string) (RemixResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return RemixResult{}, ErrEmptyContent
	}

	if s.generator == nil {
		return RemixResult{}, ErrAINotConfigured
	}

	if assignmentID != "" {
		if assignment, ok := s.assignments.GetByID(assignmentID); ok && !assignment.AIAllowed {
			return RemixResult{}, ErrAIPolicyBlocked
		}
	}

	remixType = ai.ResolveRemixType(remixType)
	prompt := ai.BuildPrompt(remixType, content)

	output, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Str("remix_type", remixType).Msg("Remix generation failed")
		return RemixResult{}, err
	}

	now := time.Now()
	entry := models.UsageLogEntry{
		ID:             uuid.Must(uuid.NewV7()).String(),
		UserID:         user.ID,
		UserName:       user.Name,
		UserEmail:      user.Email,
		RemixType:      remixType,
		AssignmentID:   assignmentID,
		ContentPreview: truncate(content, previewLength),
		ContentLength:  len(content),
		Timestamp:      now,
	}
	s.usageLog.Append(entry)

	usageCount, err := s.users.RecordUsage(user.ID, now)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record usage counters")
		return RemixResult{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("remix.recorded", entry)
	}

	return RemixResult{Output: output, UsageCount: usageCount}, nil
}

// truncate bounds s to n runes without splitting a multi-byte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
