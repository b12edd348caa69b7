package services

import (
	"context"
	"strings"
	"testing"

	"github.com/nextlogicai/nextlogic-be/internal/ai"
	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func newRemixFixture(t *testing.T, generator ContentGenerator) (*RemixService, store.UserStore, *ledger.Ledger, models.User) {
	t.Helper()

	users := store.NewMemoryStore()
	usageLog := ledger.New(ledger.DefaultCapacity)
	svc := NewRemixService(users, usageLog, NewAssignmentService(), generator, nil)

	userSvc := NewUserService(users)
	user, err := userSvc.Register("Student", "s@x.com", "secret1", "")
	require.NoError(t, err)

	return svc, users, usageLog, user
}

func TestRemixSuccessRecordsUsage(t *testing.T) {
	var gotPrompt string
	generator := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "Hello World.", nil
	})
	svc, users, usageLog, user := newRemixFixture(t, generator)

	result, err := svc.Remix(context.Background(), user, "hello world", "summary", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello World.", result.Output)
	assert.Equal(t, 1, result.UsageCount)
	assert.Contains(t, gotPrompt, "Summarize this")
	assert.Contains(t, gotPrompt, "hello world")

	result, err = svc.Remix(context.Background(), user, "hello world", "summary", "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.UsageCount)

	assert.Equal(t, 2, usageLog.Len())
	entry, ok := usageLog.RecentForUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, "summary", entry.RemixType)
	assert.Equal(t, "hello world", entry.ContentPreview)
	assert.Equal(t, len("hello world"), entry.ContentLength)

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AIUsageCount)
	assert.Equal(t, 2, stored.TotalAIRequests)
}

func TestRemixEmptyContent(t *testing.T) {
	svc, _, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "never called", nil
	}))

	_, err := svc.Remix(context.Background(), user, "   \n\t ", "summary", "")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, 0, usageLog.Len())
}

func TestRemixNotConfigured(t *testing.T) {
	svc, _, usageLog, user := newRemixFixture(t, nil)

	_, err := svc.Remix(context.Background(), user, "hello", "summary", "")
	assert.ErrorIs(t, err, ErrAINotConfigured)
	assert.Equal(t, 0, usageLog.Len())
}

func TestRemixPolicyBlocked(t *testing.T) {
	// The upstream always succeeds; a blocked assignment must still leave
	// the ledger and counters untouched.
	svc, users, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "output", nil
	}))

	_, err := svc.Remix(context.Background(), user, "hello", "summary", "essay-industrial-revolution")
	assert.ErrorIs(t, err, ErrAIPolicyBlocked)
	assert.Equal(t, 0, usageLog.Len())

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AIUsageCount)
	assert.Equal(t, 0, stored.TotalAIRequests)
}

func TestRemixAllowedAssignment(t *testing.T) {
	svc, _, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "output", nil
	}))

	result, err := svc.Remix(context.Background(), user, "hello", "summary", "blog-science-fair")
	require.NoError(t, err)
	assert.Equal(t, 1, result.UsageCount)

	entry, ok := usageLog.RecentForUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, "blog-science-fair", entry.AssignmentID)
}

func TestRemixUnknownTypeFallsBack(t *testing.T) {
	var gotPrompt string
	svc, _, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "output", nil
	}))

	// An unrecognized style is not an error; it silently uses the
	// professional rewrite.
	_, err := svc.Remix(context.Background(), user, "hello", "interpretive-dance", "")
	require.NoError(t, err)
	assert.Contains(t, gotPrompt, "professional tone")

	entry, ok := usageLog.RecentForUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, ai.DefaultRemixType, entry.RemixType)
}

func TestRemixUpstreamFailuresRecordNothing(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", ai.ErrTimeout},
		{"no candidates", ai.ErrNoCandidates},
		{"generic failure", assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
				return "", tt.err
			}))

			_, err := svc.Remix(context.Background(), user, "hello", "summary", "")
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, usageLog.Len())

			stored, lookupErr := users.GetByID(user.ID)
			require.NoError(t, lookupErr)
			assert.Equal(t, 0, stored.AIUsageCount)
		})
	}
}

func TestRemixPreviewTruncation(t *testing.T) {
	svc, _, usageLog, user := newRemixFixture(t, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "output", nil
	}))

	long := strings.Repeat("abcde ", 50) // 300 characters
	_, err := svc.Remix(context.Background(), user, long, "summary", "")
	require.NoError(t, err)

	entry, ok := usageLog.RecentForUser(user.ID)
	require.True(t, ok)
	assert.Len(t, []rune(entry.ContentPreview), 100)
	assert.Equal(t, len(strings.TrimSpace(long)), entry.ContentLength)
}
