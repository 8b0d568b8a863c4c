package services

import (
	"context"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

// LocalIdentity serves the single user profile loaded from configuration.
type LocalIdentity struct {
	user *domain.User
}

// NewLocalIdentity creates an identity backed by a fixed profile.
func NewLocalIdentity(user *domain.User) *LocalIdentity {
	return &LocalIdentity{user: user}
}

// Ensure LocalIdentity implements ports.Identity.
var _ ports.Identity = (*LocalIdentity)(nil)

// CurrentUser returns the configured user.
func (i *LocalIdentity) CurrentUser(ctx context.Context) (*domain.User, error) {
	if i.user == nil || i.user.ID == "" {
		return nil, domain.ErrNoCurrentUser
	}
	return i.user, nil
}
