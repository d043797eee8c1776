package repository

import (
	"context"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// Source is an upstream producer of work items
type Source interface {
	// Name identifies the adapter in logs and run summaries
	Name() string

	// Profile verifies the credentials and returns the authenticated user
	Profile(ctx context.Context) (*domain.Profile, error)

	// ListCollections returns the groups (courses, calendars) to sync
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// ListItems returns the normalized records of one collection. Adapters may
	// push the window down to the upstream API; the driver filters again.
	ListItems(ctx context.Context, c domain.Collection, window domain.Window) ([]domain.SourceRecord, error)
}
