package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// Inspector owns the cached destination schema. Other components only read
// the snapshots it hands out.
type Inspector struct {
	reader     repository.SchemaReader
	databaseID string
	cache      *expirable.LRU[string, *Schema]
}

// NewInspector creates an inspector for one database. Cached snapshots expire after ttl.
func NewInspector(reader repository.SchemaReader, databaseID string, ttl time.Duration) *Inspector {
	return &Inspector{
		reader:     reader,
		databaseID: databaseID,
		cache:      expirable.NewLRU[string, *Schema](cacheSize, nil, ttl),
	}
}

// DatabaseID returns the inspected database id
func (i *Inspector) DatabaseID() string {
	return i.databaseID
}

// Get returns the cached snapshot, fetching it when absent or expired
func (i *Inspector) Get(ctx context.Context) (*Schema, error) {
	if s, ok := i.cache.Get(i.databaseID); ok {
		logger.FromContext(ctx).Debug(LogMsgSchemaCacheHit, "database_id", i.databaseID)
		return s, nil
	}
	return i.Refresh(ctx)
}

// Refresh always fetches the schema and replaces the cached snapshot
func (i *Inspector) Refresh(ctx context.Context) (*Schema, error) {
	log := logger.FromContext(ctx)
	metrics.SchemaFetches.Inc()

	db, err := i.reader.GetDatabase(ctx, i.databaseID)
	if err != nil {
		log.Error(LogMsgSchemaFetchFailed, "database_id", i.databaseID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteSchema, err)
	}

	s := FromDatabase(db)
	i.cache.Add(i.databaseID, s)
	log.Debug(LogMsgSchemaFetched, "database_id", i.databaseID, "properties", len(s.Properties))
	return s, nil
}

// Invalidate drops the cached snapshot so the next Get fetches
func (i *Inspector) Invalidate() {
	i.cache.Remove(i.databaseID)
}
