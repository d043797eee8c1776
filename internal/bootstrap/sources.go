package bootstrap

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/osse101/AssignmentSync_Go/internal/calendar"
	"github.com/osse101/AssignmentSync_Go/internal/canvas"
	"github.com/osse101/AssignmentSync_Go/internal/config"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// BuildSources creates every configured source in run order: Canvas first,
// then the calendar, which resolves teachers through Canvas when both are set.
// calendarOpts replace the default service-account credentials.
func BuildSources(ctx context.Context, cfg *config.Config, calendarOpts ...option.ClientOption) ([]repository.Source, error) {
	log := logger.FromContext(ctx)
	policy := cfg.RetryPolicy()

	var sources []repository.Source
	var teachers calendar.TeacherLookup

	if cfg.HasCanvas() {
		cv := canvas.NewSource(canvas.NewClient(cfg.CanvasBaseURL, cfg.CanvasToken, policy))
		sources = append(sources, cv)
		teachers = cv
		log.Info(LogMsgSourceEnabled, "source", cv.Name(), "base_url", cfg.CanvasBaseURL)
	}

	if cfg.HasCalendar() {
		svc, err := calendar.NewService(ctx, cfg.GoogleCredentials, calendarOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCalendarService, err)
		}
		cal := calendar.NewSource(svc, cfg.CalendarIDs, teachers, policy)
		sources = append(sources, cal)
		log.Info(LogMsgSourceEnabled, "source", cal.Name(), "calendars", len(cfg.CalendarIDs))
	}

	return sources, nil
}
