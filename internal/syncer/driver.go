package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
	"github.com/osse101/AssignmentSync_Go/internal/taxonomy"
	"github.com/osse101/AssignmentSync_Go/internal/upsert"
)

// Runner executes one sync run
type Runner interface {
	Run(ctx context.Context) (*domain.RunSummary, error)
}

// FieldMapProvider supplies the field map active for a run
type FieldMapProvider interface {
	Current() mapping.FieldMap
}

// Notifier announces finished runs
type Notifier interface {
	Notify(ctx context.Context, summary *domain.RunSummary) error
}

// Deps are the collaborators of a run. RunLog and Notifier are optional.
type Deps struct {
	Sources    []repository.Source
	Dest       repository.Destination
	Inspector  *schema.Inspector
	Reconciler *taxonomy.Reconciler
	Engine     *upsert.Engine
	Mapper     *mapping.Mapper
	FieldMaps  FieldMapProvider
	RunLog     repository.RunLog
	Notifier   Notifier
}

// Options configures a run
type Options struct {
	PastDays       int
	FutureDays     int
	IncludeUndated bool
	DryRun         bool

	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// Driver walks every source, collection and record in upstream order, one at a time
type Driver struct {
	deps Deps
	opts Options
}

// New creates a driver
func New(deps Deps, opts Options) *Driver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Driver{deps: deps, opts: opts}
}

// Run performs one sync. The summary is always returned; the error is set
// only when the run was aborted.
func (d *Driver) Run(ctx context.Context) (*domain.RunSummary, error) {
	runID := logger.NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)

	summary := &domain.RunSummary{
		RunID:     runID,
		StartedAt: d.opts.Now(),
		DryRun:    d.opts.DryRun,
	}
	for _, src := range d.deps.Sources {
		summary.Sources = append(summary.Sources, src.Name())
	}
	log.Info(LogMsgRunStarted, "sources", summary.Sources, "dry_run", d.opts.DryRun)

	err := d.run(ctx, summary)

	summary.FinishedAt = d.opts.Now()
	if err != nil {
		summary.Err = err.Error()
		log.Error(LogMsgRunAborted, "error", err)
	}
	d.finish(ctx, summary)
	return summary, err
}

func (d *Driver) run(ctx context.Context, summary *domain.RunSummary) error {
	log := logger.FromContext(ctx)

	// always start from the live schema
	s, err := d.deps.Inspector.Refresh(ctx)
	if err != nil {
		return err
	}

	fm := d.deps.FieldMaps.Current()
	bindings, err := d.deps.Engine.Prepare(ctx, fm)
	if err != nil {
		return err
	}
	if missing := bindings.Missing(); len(missing) > 0 {
		log.Debug(LogMsgUnboundFields, "fields", missing, "database", s.Title)
	}

	mapper := d.deps.Mapper
	if usesPeople(bindings) {
		users, err := d.deps.Dest.ListUsers(ctx)
		if err != nil {
			if stopsRun(err) {
				return err
			}
			log.Warn(LogMsgUsersFailed, "error", err)
		} else {
			mapper = mapper.WithDirectory(mapping.NewDirectory(users))
		}
	}

	now := d.opts.Now()
	window := domain.NewWindow(now, d.opts.PastDays, d.opts.FutureDays, d.opts.IncludeUndated)

	for _, src := range d.deps.Sources {
		log.Info(LogMsgSourceStarted, "source", src.Name())

		collections, err := src.ListCollections(ctx)
		if err != nil {
			if stopsRun(err) {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			log.Warn(LogMsgCollectionsFailed, "source", src.Name(), "error", err)
			d.fail(summary, domain.SourceRecord{Source: src.Name(), Title: collectionFailureTitle}, err)
			continue
		}

		for _, c := range collections {
			if err := d.syncCollection(ctx, summary, src, c, bindings, mapper, window, now); err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
		}
	}
	return nil
}

// syncCollection returns an error only when the run must stop
func (d *Driver) syncCollection(
	ctx context.Context,
	summary *domain.RunSummary,
	src repository.Source,
	c domain.Collection,
	bindings mapping.Bindings,
	mapper *mapping.Mapper,
	window domain.Window,
	now time.Time,
) error {
	log := logger.FromContext(ctx).With("source", src.Name(), "collection", c.Name)
	log.Info(LogMsgCollectionStarted, "collection_id", c.ID)

	items, err := src.ListItems(ctx, c, window)
	if err != nil {
		if stopsRun(err) {
			return err
		}
		log.Warn(LogMsgCollectionFailed, "error", err)
		d.fail(summary, domain.SourceRecord{Source: src.Name(), SourceID: c.ID, Title: collectionFailureTitle}, err)
		return nil
	}

	type pending struct {
		rec    domain.SourceRecord
		labels mapping.Labels
	}
	facets := taxonomy.NewFacets()
	var records []pending
	for _, rec := range items {
		rec = rec.Normalize()
		if rec.Source == "" {
			rec.Source = src.Name()
		}
		if !window.Contains(rec.DueAt) {
			log.Debug(LogMsgRecordSkipped, "source_id", rec.SourceID, "title", rec.Title)
			summary.Count(domain.ActionSkipped)
			metrics.RecordRecord(domain.ActionSkipped)
			continue
		}
		l := mapping.LabelsFor(rec, now)
		facets.Add(l)
		records = append(records, pending{rec: rec, labels: l})
	}
	if len(records) == 0 {
		return nil
	}

	// one schema write per property for the whole collection
	if _, err := d.deps.Reconciler.EnsureFacets(ctx, bindings, facets); err != nil {
		if stopsRun(err) {
			return err
		}
		log.Warn(LogMsgTaxonomyFailed, "error", err)
	}
	s, err := d.deps.Inspector.Get(ctx)
	if err != nil {
		return err
	}

	for _, p := range records {
		payload := mapper.BuildProperties(p.rec, s, bindings, p.labels)
		for _, o := range payload.Omitted() {
			if o.Property != "" {
				log.Debug(LogMsgFieldOmitted, "field", o.Field, "property", o.Property, "reason", o.Reason)
			}
		}

		out, err := d.deps.Engine.Upsert(ctx, p.rec, bindings, payload)
		if err != nil {
			if abortsRun(err) {
				return err
			}
			log.Warn(LogMsgRecordFailed, "source_id", p.rec.SourceID, "title", p.rec.Title, "error", err)
			d.fail(summary, p.rec, err)
			continue
		}
		summary.Count(out.Action)
		metrics.RecordRecord(out.Action)
	}
	return nil
}

func (d *Driver) fail(summary *domain.RunSummary, rec domain.SourceRecord, err error) {
	summary.AddFailure(rec, err)
	metrics.RecordFailure(rec.Source)
}

func (d *Driver) finish(ctx context.Context, summary *domain.RunSummary) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRunFinished,
		"processed", summary.Processed,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", summary.Duration(),
	)
	metrics.RecordRun(ctx, summary)

	// history and notifications must not fail a run
	if d.deps.RunLog != nil {
		if err := d.deps.RunLog.SaveRun(ctx, summary); err != nil {
			log.Warn(LogMsgRunLogFailed, "error", err)
		}
	}
	if d.deps.Notifier != nil {
		if err := d.deps.Notifier.Notify(ctx, summary); err != nil {
			log.Warn(LogMsgNotifyFailed, "error", err)
		}
	}
}

// stopsRun reports whether a source or schema error must stop the run: any
// fatal class, including a wrong or unshared collection id, or a cancelled
// context.
func stopsRun(err error) bool {
	return domain.IsFatal(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// abortsRun is stopsRun for errors met while writing one record. A 404 there
// means the matched page vanished between lookup and write, which is charged
// to that record alone.
func abortsRun(err error) bool {
	return stopsRun(err) && !errors.Is(err, domain.ErrNotFound)
}

func usesPeople(b mapping.Bindings) bool {
	for _, bd := range b.All() {
		if bd.Type == schema.FieldPeople {
			return true
		}
	}
	return false
}
