package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"

	"github.com/osse101/AssignmentSync_Go/internal/config"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/notify"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/runlog"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
	"github.com/osse101/AssignmentSync_Go/internal/syncer"
	"github.com/osse101/AssignmentSync_Go/internal/taxonomy"
	"github.com/osse101/AssignmentSync_Go/internal/upsert"
)

// App holds the wired components of one process
type App struct {
	Config    *config.Config
	Notion    *notion.Client
	Inspector *schema.Inspector
	Mapper    *mapping.Mapper
	FieldMaps *mapping.Store
	Engine    *upsert.Engine
	Sources   []repository.Source
	Driver    *syncer.Driver

	// History and DB are nil when run history is disabled
	History runlog.Service
	DB      *pgxpool.Pool
}

// Options tunes wiring per command
type Options struct {
	// DryRun forces a dry run regardless of DRY_RUN
	DryRun bool

	// WithHistory opens the run history database when DATABASE_URL is set
	WithHistory bool

	// WithNotifier announces finished runs when DISCORD_WEBHOOK_URL is set
	WithNotifier bool

	// CalendarOptions replace the calendar client's default credentials
	CalendarOptions []option.ClientOption
}

// Build wires every component named by cfg. Close releases what it opened.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := logger.FromContext(ctx)
	dryRun := cfg.DryRun || opts.DryRun
	policy := cfg.RetryPolicy()

	fieldMaps, err := mapping.NewStore(cfg.FieldMapPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFieldMap, err)
	}
	if cfg.FieldMapPath != "" {
		log.Info(LogMsgFieldMapLoaded, "path", cfg.FieldMapPath)
	}

	client := notion.NewClient(cfg.NotionBaseURL, cfg.NotionToken)
	inspector := schema.NewInspector(client, cfg.NotionDatabaseID, cfg.SchemaCacheTTL)
	mapper := mapping.NewMapper(mapping.Options{Location: cfg.Location, DateOnly: cfg.DateOnly()})
	engine := upsert.NewEngine(client, inspector, mapper, upsert.Options{
		Policy:         policy,
		AllowMigration: cfg.SchemaMigrate,
		IdentityType:   schema.ParseFieldType(cfg.IdentityFieldType),
		DryRun:         dryRun,
	})

	sources, err := BuildSources(ctx, cfg, opts.CalendarOptions...)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Notion:    client,
		Inspector: inspector,
		Mapper:    mapper,
		FieldMaps: fieldMaps,
		Engine:    engine,
		Sources:   sources,
	}

	deps := syncer.Deps{
		Sources:    sources,
		Dest:       client,
		Inspector:  inspector,
		Reconciler: taxonomy.NewReconciler(client, inspector, policy, dryRun),
		Engine:     engine,
		Mapper:     mapper,
		FieldMaps:  fieldMaps,
	}

	if opts.WithHistory {
		pool, history, err := OpenHistory(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if history != nil {
			app.DB, app.History = pool, history
			deps.RunLog = history
			log.Info(LogMsgHistoryEnabled)
		} else {
			log.Info(LogMsgHistoryDisabled)
		}
	}

	if opts.WithNotifier && cfg.DiscordWebhookURL != "" {
		n, err := notify.NewDiscord(cfg.DiscordWebhookURL, NotifierUsername)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgNotifier, err)
		}
		deps.Notifier = n
		log.Info(LogMsgNotifierEnabled)
	}

	app.Driver = syncer.New(deps, syncer.Options{
		PastDays:       cfg.PastDays,
		FutureDays:     cfg.FutureDays,
		IncludeUndated: cfg.IncludeUndated,
		DryRun:         dryRun,
	})
	return app, nil
}

// Close releases the history database, if open
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
	}
}
