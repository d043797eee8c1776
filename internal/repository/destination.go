package repository

import (
	"context"

	"github.com/osse101/AssignmentSync_Go/internal/notion"
)

// SchemaReader fetches the destination schema
type SchemaReader interface {
	GetDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
}

// SchemaWriter appends properties or options to the destination schema
type SchemaWriter interface {
	SchemaReader
	UpdateDatabase(ctx context.Context, databaseID string, properties map[string]any) (*notion.Database, error)
}

// Destination is the record store the sync writes into.
// Every method is a single remote call; callers own retries.
type Destination interface {
	SchemaWriter

	QueryDatabase(ctx context.Context, databaseID string, q notion.Query) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, props notion.Properties) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, props notion.Properties) (*notion.Page, error)

	// ListUsers resolves people properties
	ListUsers(ctx context.Context) ([]notion.User, error)

	// Me verifies the token
	Me(ctx context.Context) (*notion.User, error)
}
