package ports

import (
	"context"

	"github.com/tempo-cli/tempo/internal/domain"
)

// Identity supplies the current user and their preferences. The core never
// authenticates directly.
// This is a driven port (implemented by adapters).
type Identity interface {
	// CurrentUser returns the active user profile.
	CurrentUser(ctx context.Context) (*domain.User, error)
}
