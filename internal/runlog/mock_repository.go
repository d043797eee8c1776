package runlog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// MockRepository is a mock implementation of repository.RunLog
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveRun(ctx context.Context, summary *domain.RunSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockRepository) ListRuns(ctx context.Context, filter repository.RunLogFilter) ([]repository.RunLogEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]repository.RunLogEntry), args.Error(1)
}

func (m *MockRepository) CleanupOldRuns(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
