package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-cli/tempo/internal/adapters/storage"
	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

func newTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestIdentity() ports.Identity {
	return NewLocalIdentity(&domain.User{
		ID:          "user-1",
		Name:        "Tester",
		Preferences: domain.DefaultPreferences(),
	})
}

func TestSessionServiceRecordCompletedSession(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, newTestIdentity(), nil, nil)
	ctx := context.Background()

	session := domain.NewWorkSession("user-1", 25*time.Minute, 1, time.Now())
	require.NoError(t, svc.RecordCompletedSession(ctx, session))

	saved, err := store.Sessions().FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeWork, saved.Mode)
	assert.Equal(t, 1, saved.Interruptions)
}

func TestSessionServiceHistoryNewestFirst(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, newTestIdentity(), nil, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		session := domain.NewWorkSession("user-1", 25*time.Minute, 0, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, svc.RecordCompletedSession(ctx, session))
	}

	sessions, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.True(t, sessions[0].CompletedAt.After(sessions[1].CompletedAt))
	assert.True(t, sessions[1].CompletedAt.After(sessions[2].CompletedAt))
}

func TestSessionServiceLogMood(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, newTestIdentity(), nil, nil)
	ctx := context.Background()

	entry, err := svc.LogMood(ctx, domain.MoodGood, 4, 2, "post standup")
	require.NoError(t, err)
	assert.Equal(t, "user-1", entry.UserID)

	moods, err := svc.Moods(ctx, 10)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, domain.MoodGood, moods[0].Mood)
}

func TestSessionServiceLogMoodValidation(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, newTestIdentity(), nil, nil)
	ctx := context.Background()

	_, err := svc.LogMood(ctx, domain.MoodLevel("euphoric"), 3, 3, "")
	assert.ErrorIs(t, err, domain.ErrInvalidMoodLevel)

	_, err = svc.LogMood(ctx, domain.MoodGood, 0, 3, "")
	assert.ErrorIs(t, err, domain.ErrMoodScaleOutOfRange)
}

func TestSessionServiceCount(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, newTestIdentity(), nil, nil)
	ctx := context.Background()

	count, err := svc.SessionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.RecordCompletedSession(ctx,
		domain.NewWorkSession("user-1", 25*time.Minute, 0, time.Now())))

	count, err = svc.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSessionServiceNoUserConfigured(t *testing.T) {
	store := newTestStorage(t)
	svc := NewSessionService(store, NewLocalIdentity(nil), nil, nil)

	_, err := svc.History(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNoCurrentUser)
}
