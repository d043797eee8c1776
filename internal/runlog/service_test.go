package runlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

func TestService_SaveRun(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	summary := &domain.RunSummary{RunID: "run-1"}

	mockRepo.On("SaveRun", mock.Anything, summary).Return(nil).Once()
	mockRepo.On("SaveRun", mock.Anything, summary).Return(errors.New("db down")).Once()

	assert.NoError(t, svc.SaveRun(context.Background(), summary))
	assert.EqualError(t, svc.SaveRun(context.Background(), summary), "db down")
	mockRepo.AssertExpectations(t)
}

func TestService_ListRunsClampsLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"default", 0, DefaultListLimit},
		{"negative", -5, DefaultListLimit},
		{"within range", 7, 7},
		{"too large", 1000, MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo)
			entries := []repository.RunLogEntry{{RunID: "run-1"}}
			mockRepo.On("ListRuns", mock.Anything, repository.RunLogFilter{Limit: tt.expected}).Return(entries, nil)

			got, err := svc.Recent(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Equal(t, entries, got)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_ListRunsKeepsFilter(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	mockRepo.On("ListRuns", mock.Anything, mock.MatchedBy(func(f repository.RunLogFilter) bool {
		return f.OnlyFailed && f.Limit == 3
	})).Return([]repository.RunLogEntry{}, nil)

	_, err := svc.ListRuns(context.Background(), repository.RunLogFilter{OnlyFailed: true, Limit: 3})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
