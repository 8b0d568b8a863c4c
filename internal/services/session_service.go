// Package services contains the application use cases that orchestrate the
// domain, analytics, and adapters.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// SessionService handles session and mood recording use cases.
type SessionService struct {
	storage  ports.Storage
	identity ports.Identity
	detector ports.WorkspaceDetector
	logger   *log.Logger
}

// NewSessionService creates a new session service. The detector may be nil.
func NewSessionService(storage ports.Storage, identity ports.Identity, detector ports.WorkspaceDetector, logger *log.Logger) *SessionService {
	if logger == nil {
		logger = log.Default()
	}
	return &SessionService{
		storage:  storage,
		identity: identity,
		detector: detector,
		logger:   logger,
	}
}

// RecordCompletedSession persists a finished session, tagging it with the
// current repository context when one is detectable. Implements the timer's
// Recorder contract: an error here means the session was not persisted and
// the caller's completed counter must not advance.
func (s *SessionService) RecordCompletedSession(ctx context.Context, session *domain.Session) error {
	if s.detector != nil && s.detector.IsAvailable() {
		if info, err := s.detector.Detect(ctx, ""); err == nil && info != nil {
			session.SetWorkspaceContext(info.Repository, info.Branch)
		}
	}

	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			s.logger.Warn("storage unavailable, session not persisted", "session", session.ID)
		} else {
			s.logger.Error("failed to persist session", "session", session.ID, "err", err)
		}
		return err
	}
	return nil
}

// History returns the current user's recent sessions, newest first. A
// transient storage failure degrades to an empty history.
func (s *SessionService) History(ctx context.Context, limit int) ([]*domain.Session, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.storage.Sessions().FindRecent(ctx, user.ID, limit)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		s.logger.Warn("storage unavailable, returning empty session history")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	return sessions, nil
}

// LogMood records a mood check-in for the current user.
func (s *SessionService) LogMood(ctx context.Context, mood domain.MoodLevel, energy, stress int, note string) (*domain.MoodEntry, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewMoodEntry(user.ID, mood, energy, stress, note)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Moods().Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}
	return entry, nil
}

// Moods returns the current user's recent mood entries, newest first. A
// transient storage failure degrades to an empty list.
func (s *SessionService) Moods(ctx context.Context, limit int) ([]*domain.MoodEntry, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.Moods().FindRecent(ctx, user.ID, limit)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		s.logger.Warn("storage unavailable, returning empty mood history")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mood history: %w", err)
	}
	return entries, nil
}

// SessionCount returns the total number of recorded sessions for the
// current user.
func (s *SessionService) SessionCount(ctx context.Context) (int, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return s.storage.Sessions().CountForUser(ctx, user.ID)
}

// CurrentUser exposes the identity collaborator to callers that need the
// profile.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.identity.CurrentUser(ctx)
}
