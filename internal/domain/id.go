package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier.
func generateID() string {
	return uuid.New().String()
}

// NewID exposes id generation to layers that mint records outside this
// package.
func NewID() string {
	return generateID()
}
