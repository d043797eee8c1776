package upsert

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Options configures the engine
type Options struct {
	Policy retry.Policy

	// AllowMigration lets Prepare add the identity property when none is bound
	AllowMigration bool
	IdentityName   string
	IdentityType   schema.FieldType

	// DryRun performs lookups but replaces every write with a log line
	DryRun bool
}

// Outcome is what happened to one record
type Outcome struct {
	Action    domain.Action
	PageID    string
	MatchedBy string
}

// Engine resolves each record to at most one destination page and writes it
type Engine struct {
	dest      repository.Destination
	inspector *schema.Inspector
	mapper    *mapping.Mapper
	opts      Options
}

// NewEngine creates an upsert engine
func NewEngine(dest repository.Destination, inspector *schema.Inspector, mapper *mapping.Mapper, opts Options) *Engine {
	if opts.IdentityType == "" {
		opts.IdentityType = schema.FieldNumber
	}
	return &Engine{dest: dest, inspector: inspector, mapper: mapper, opts: opts}
}

// Prepare resolves the bindings for a run. When no identity property is bound
// and migration is allowed it adds one, once, before the first lookup. A
// failed migration leaves the run matching by fallback only.
func (e *Engine) Prepare(ctx context.Context, fm mapping.FieldMap) (mapping.Bindings, error) {
	log := logger.FromContext(ctx)

	s, err := e.inspector.Get(ctx)
	if err != nil {
		return mapping.Bindings{}, err
	}
	b := mapping.Resolve(fm, s)
	if b.Has(mapping.FieldSourceID) || !e.opts.AllowMigration {
		return b, nil
	}

	name := e.identityName(fm)
	candidates := append(append([]string(nil), fm.Candidates(mapping.FieldSourceID)...), name)
	withIdentity := fm.Merge(mapping.FieldMap{mapping.FieldSourceID: candidates})
	if s.Has(name) {
		return mapping.Resolve(withIdentity, s), nil
	}
	if e.opts.DryRun {
		log.Info(LogMsgIdentityDryRun, "property", name, "type", e.opts.IdentityType)
		return b, nil
	}

	body := map[string]any{
		name: map[string]any{string(e.opts.IdentityType): map[string]any{}},
	}
	res := retry.Do(ctx, e.opts.Policy, opMigrateIdentity, func(ctx context.Context) (*notion.Database, error) {
		return e.dest.UpdateDatabase(ctx, e.inspector.DatabaseID(), body)
	})
	if res.Err != nil {
		if errors.Is(res.Err, domain.ErrPermission) {
			log.Warn(LogMsgIdentityForbidden, "property", name, "error", res.Err)
		} else {
			log.Warn(LogMsgIdentityFailed, "property", name, "error", res.Err)
		}
		return b, nil
	}

	s, err = e.inspector.Refresh(ctx)
	if err != nil {
		return mapping.Bindings{}, err
	}
	log.Info(LogMsgIdentityMigrated, "property", name, "type", e.opts.IdentityType)

	return mapping.Resolve(withIdentity, s), nil
}

func (e *Engine) identityName(fm mapping.FieldMap) string {
	if e.opts.IdentityName != "" {
		return e.opts.IdentityName
	}
	if c := fm.Candidates(mapping.FieldSourceID); len(c) > 0 {
		return c[0]
	}
	return DefaultIdentityName
}

// Upsert finds the page for rec and updates it, or creates one.
// A lookup error fails the record without falling back, so an outage can
// never turn into a duplicate.
func (e *Engine) Upsert(ctx context.Context, rec domain.SourceRecord, b mapping.Bindings, p *mapping.Payload) (Outcome, error) {
	log := logger.FromContext(ctx).With("source", rec.Source, "source_id", rec.SourceID, "title", rec.Title)

	page, matchedBy, err := e.lookup(ctx, rec, b)
	if err != nil {
		return Outcome{Action: domain.ActionFailed}, err
	}

	if page != nil {
		if e.opts.DryRun {
			log.Info(LogMsgWouldUpdate, "page_id", page.ID, "matched_by", matchedBy)
			return Outcome{Action: domain.ActionWouldUpdate, PageID: page.ID, MatchedBy: matchedBy}, nil
		}
		props := p.ForUpdate()
		res := retry.Do(ctx, e.opts.Policy, opUpdatePage, func(ctx context.Context) (*notion.Page, error) {
			return e.dest.UpdatePage(ctx, page.ID, props)
		})
		if res.Err != nil {
			return Outcome{Action: domain.ActionFailed, PageID: page.ID, MatchedBy: matchedBy}, fmt.Errorf("update page %s: %w", page.ID, res.Err)
		}
		log.Debug(LogMsgUpdated, "page_id", page.ID, "matched_by", matchedBy)
		return Outcome{Action: domain.ActionUpdated, PageID: page.ID, MatchedBy: matchedBy}, nil
	}

	if e.opts.DryRun {
		log.Info(LogMsgWouldCreate)
		return Outcome{Action: domain.ActionWouldCreate, MatchedBy: MatchNone}, nil
	}
	created, err := e.dest.CreatePage(ctx, e.inspector.DatabaseID(), p.ForCreate())
	if err != nil {
		return Outcome{Action: domain.ActionFailed, MatchedBy: MatchNone}, fmt.Errorf("create page: %w", err)
	}
	log.Debug(LogMsgCreated, "page_id", created.ID)
	return Outcome{Action: domain.ActionCreated, PageID: created.ID, MatchedBy: MatchNone}, nil
}

// lookup runs the id lookup, then the fallback lookup on a confirmed miss
func (e *Engine) lookup(ctx context.Context, rec domain.SourceRecord, b mapping.Bindings) (*notion.Page, string, error) {
	log := logger.FromContext(ctx)

	if bd, ok := b.Get(mapping.FieldSourceID); ok && rec.HasSourceID() {
		if filter, ok := mapping.IdentityFilter(bd, rec.SourceID); ok {
			pages, err := e.query(ctx, opLookupByID, filter, idLookupPageSize)
			if err != nil {
				return nil, "", fmt.Errorf("lookup by id: %w", err)
			}
			if len(pages) > 0 {
				return &pages[0], MatchID, nil
			}
		} else {
			log.Debug(LogMsgIdentitySkipped, "source_id", rec.SourceID, "property", bd.Property, "type", bd.Type)
		}
	}

	filter, ok := e.mapper.FallbackFilter(b, rec)
	if !ok {
		log.Debug(LogMsgFallbackUnavailable)
		return nil, MatchNone, nil
	}
	pages, err := e.query(ctx, opLookupByFallback, filter, fallbackLookupPageSize)
	if err != nil {
		return nil, "", fmt.Errorf("lookup by title and due date: %w", err)
	}
	if len(pages) == 0 {
		return nil, MatchNone, nil
	}
	if len(pages) > 1 {
		log.Warn(LogMsgFallbackAmbiguous, "title", rec.Title, "matches", len(pages), "page_id", pages[0].ID)
	}
	return &pages[0], MatchFallback, nil
}

func (e *Engine) query(ctx context.Context, name string, filter notion.Filter, pageSize int) ([]notion.Page, error) {
	res := retry.Do(ctx, e.opts.Policy, name, func(ctx context.Context) ([]notion.Page, error) {
		return e.dest.QueryDatabase(ctx, e.inspector.DatabaseID(), notion.Query{Filter: filter, PageSize: pageSize})
	})
	return res.Value, res.Err
}
