package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Reconciler makes sure every label a run writes exists as an option on the
// select and multi-select properties it targets
type Reconciler struct {
	writer    repository.SchemaWriter
	inspector *schema.Inspector
	policy    retry.Policy
	dryRun    bool
}

// NewReconciler creates a reconciler writing through writer
func NewReconciler(writer repository.SchemaWriter, inspector *schema.Inspector, policy retry.Policy, dryRun bool) *Reconciler {
	return &Reconciler{writer: writer, inspector: inspector, policy: policy, dryRun: dryRun}
}

// EnsureOptions appends the wanted names that the property lacks, in a single
// schema write. Absent properties and non-select types are left alone. A
// permission error is logged and swallowed so the run can continue; writes
// of unknown options then degrade per field.
func (r *Reconciler) EnsureOptions(ctx context.Context, property string, wanted []string) (int, error) {
	log := logger.FromContext(ctx)

	s, err := r.inspector.Get(ctx)
	if err != nil {
		return 0, err
	}
	prop, ok := s.Property(property)
	if !ok || !prop.SelectLike() {
		return 0, nil
	}

	missing := Missing(prop, wanted)
	if len(missing) == 0 {
		return 0, nil
	}
	if r.dryRun {
		log.Info(LogMsgOptionsDryRun, "property", property, "options", missing)
		return len(missing), nil
	}

	options := make([]notion.SelectOption, 0, len(prop.Options)+len(missing))
	for _, o := range prop.Options {
		options = append(options, notion.SelectOption{ID: o.ID, Name: o.Name, Color: o.Color})
	}
	for _, name := range missing {
		options = append(options, notion.SelectOption{Name: name, Color: ColorFor(name)})
	}
	body := map[string]any{
		prop.Name: map[string]any{
			string(prop.Type): map[string]any{"options": options},
		},
	}

	res := retry.Do(ctx, r.policy, operationEnsureOptions, func(ctx context.Context) (*notion.Database, error) {
		return r.writer.UpdateDatabase(ctx, r.inspector.DatabaseID(), body)
	})
	if res.Err != nil {
		if errors.Is(res.Err, domain.ErrPermission) {
			log.Warn(LogMsgOptionsForbidden, "property", property, "error", res.Err)
			return 0, nil
		}
		log.Warn(LogMsgOptionsFailed, "property", property, "error", res.Err)
		return 0, fmt.Errorf("add options to %q: %w", property, res.Err)
	}

	metrics.TaxonomyOptionsAdded.WithLabelValues(property).Add(float64(len(missing)))
	log.Info(LogMsgOptionsAdded, "property", property, "options", missing)

	if _, err := r.inspector.Refresh(ctx); err != nil {
		log.Warn(LogMsgSchemaRefreshFail, "error", err)
	}
	return len(missing), nil
}

// EnsureFacets reconciles every bound facet property. Failures are joined;
// none of them is fatal to the run.
func (r *Reconciler) EnsureFacets(ctx context.Context, b mapping.Bindings, f *Facets) (int, error) {
	var (
		total int
		errs  []error
	)
	for _, field := range facetFields {
		property := b.Property(field)
		if property == "" {
			continue
		}
		n, err := r.EnsureOptions(ctx, property, f.Values(field))
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// Missing returns the unique non-empty names the property has no option for
func Missing(prop schema.Property, wanted []string) []string {
	var out []string
	for _, name := range domain.UniqueNames(wanted) {
		if !prop.HasOption(name) {
			out = append(out, name)
		}
	}
	return out
}

// ColorFor picks a stable color for an option name
func ColorFor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return notion.Colors[h.Sum32()%uint32(len(notion.Colors))]
}
