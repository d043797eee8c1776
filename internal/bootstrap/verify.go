package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/AssignmentSync_Go/internal/database"
	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Check is the outcome of one connectivity probe
type Check struct {
	Name   string
	Detail string
	Err    error
	Hint   string

	// Warning marks a problem that does not prevent syncing
	Warning bool
}

// OK reports whether the probe passed
func (c Check) OK() bool {
	return c.Err == nil
}

// Report collects every probe of a verify pass
type Report struct {
	Checks []Check
}

// OK reports whether every blocking probe passed
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK() && !c.Warning {
			return false
		}
	}
	return true
}

func (r *Report) add(name, detail string, err error) {
	r.Checks = append(r.Checks, Check{Name: name, Detail: detail, Err: err, Hint: Remediation(err)})
}

func (r *Report) warn(name, detail, hint string) {
	r.Checks = append(r.Checks, Check{Name: name, Detail: detail, Err: errors.New(detail), Hint: hint, Warning: true})
}

// VerifyTarget is what Verify probes
type VerifyTarget struct {
	Dest      repository.Destination
	Inspector *schema.Inspector
	FieldMap  mapping.FieldMap
	Sources   []repository.Source

	// DB is probed only when set
	DB database.Pool
}

// Target returns the probes for a wired app
func (a *App) Target() VerifyTarget {
	t := VerifyTarget{
		Dest:      a.Notion,
		Inspector: a.Inspector,
		FieldMap:  a.FieldMaps.Current(),
		Sources:   a.Sources,
	}
	if a.DB != nil {
		t.DB = a.DB
	}
	return t
}

// Verify probes every credential and id without writing anything. It keeps
// going after a failure so one pass reports every problem.
func Verify(ctx context.Context, t VerifyTarget) *Report {
	r := &Report{}

	probe, cancel := context.WithTimeout(ctx, VerifyTimeout)
	me, err := t.Dest.Me(probe)
	cancel()
	if err != nil {
		r.add(CheckNotionToken, "", err)
	} else {
		r.add(CheckNotionToken, fmt.Sprintf("authenticated as %s", me.Name), nil)
	}

	probe, cancel = context.WithTimeout(ctx, VerifyTimeout)
	s, err := t.Inspector.Refresh(probe)
	cancel()
	if err != nil {
		r.add(CheckDatabase, t.Inspector.DatabaseID(), err)
	} else {
		r.add(CheckDatabase, fmt.Sprintf("%q with %d properties", s.Title, len(s.Properties)), nil)
		verifyBindings(r, t.FieldMap, s)
	}

	for _, src := range t.Sources {
		verifySource(ctx, r, src)
	}

	if t.DB != nil {
		probe, cancel = context.WithTimeout(ctx, VerifyTimeout)
		err := t.DB.Ping(probe)
		cancel()
		r.add(CheckHistory, "", err)
	}
	return r
}

func verifyBindings(r *Report, fm mapping.FieldMap, s *schema.Schema) {
	b := mapping.Resolve(fm, s)
	if !b.Has(mapping.FieldTitle) {
		err := fmt.Errorf("%w: no title property bound", domain.ErrRemoteSchema)
		r.add(CheckFieldMap, strings.Join(fm.Candidates(mapping.FieldTitle), ", "), err)
		return
	}

	missing := b.Missing()
	if len(missing) == 0 {
		r.add(CheckFieldMap, fmt.Sprintf("all %d fields bound", len(b.All())), nil)
		return
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	r.warn(CheckFieldMap, "unbound fields: "+strings.Join(names, ", "), HintMissingBind)
}

func verifySource(ctx context.Context, r *Report, src repository.Source) {
	probe, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()

	p, err := src.Profile(probe)
	if err != nil {
		r.add(src.Name(), "", err)
		return
	}
	cols, err := src.ListCollections(probe)
	if err != nil {
		r.add(src.Name(), p.Name, err)
		return
	}
	r.add(src.Name(), fmt.Sprintf("%s, %d collections", p.Name, len(cols)), nil)
}

// Remediation returns the operator hint for an error class
func Remediation(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAuth):
		return HintAuth
	case errors.Is(err, domain.ErrPermission):
		return HintPermission
	case errors.Is(err, domain.ErrNotFound):
		return HintNotFound
	case errors.Is(err, domain.ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return HintTransient
	case errors.Is(err, domain.ErrConfig):
		return HintConfig
	case errors.Is(err, domain.ErrRemoteSchema):
		return HintRemote
	default:
		return HintUnknown
	}
}
