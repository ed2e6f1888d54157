// Package repository defines the match result store interface and errors.
package repository

import (
	"context"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// Store provides read/write access to produced match results. Results are
// key-addressed by match id; durable persistence is an external concern.
type Store interface {
	// Put records a finished match result. An existing result under the
	// same id is overwritten.
	Put(ctx context.Context, result model.MatchResult) error

	// Get returns the result for a match id.
	// Returns ErrNotFound if the match is unknown.
	Get(ctx context.Context, matchID string) (model.MatchResult, error)

	// Recent returns up to n results, most recent first.
	Recent(ctx context.Context, n int) ([]model.MatchResult, error)

	// Count returns the number of stored results.
	Count(ctx context.Context) int
}
