package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/osse101/AssignmentSync_Go/internal/database"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of failed API calls
type ErrorResponse struct {
	Error string `json:"error"`
}

// TriggerResponse is the body of an accepted sync trigger
type TriggerResponse struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
}

// RunsResponse lists recorded runs, newest first
type RunsResponse struct {
	Runs []repository.RunLogEntry `json:"runs"`
}

// handleHealthz reports liveness
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// handleReadyz checks the run history database when one is configured
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse "Run history database unreachable"
// @Router /readyz [get]
func handleReadyz(db database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
				respondJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: "database connection failed",
				})
				return
			}
		}
		respondJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// handleTriggerSync queues a run; 409 when one is already waiting
// @Summary Queue a sync run
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 202 {object} TriggerResponse "Run queued"
// @Failure 409 {object} ErrorResponse "A run is already pending"
// @Router /api/v1/sync [post]
func handleTriggerSync(sync SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sync.Trigger() {
			respondJSON(w, r, http.StatusConflict, ErrorResponse{Error: ErrMsgRunPending})
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgSyncTriggered)
		respondJSON(w, r, http.StatusAccepted, TriggerResponse{Status: "queued", Running: sync.Running()})
	}
}

// handleLastRun returns the summary of the last run in this process
// @Summary Last run summary
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.RunSummary
// @Failure 404 {object} ErrorResponse "No run has finished yet"
// @Router /api/v1/runs/last [get]
func handleLastRun(sync SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := sync.Last()
		if last == nil {
			respondJSON(w, r, http.StatusNotFound, ErrorResponse{Error: ErrMsgNoRunYet})
			return
		}
		respondJSON(w, r, http.StatusOK, last)
	}
}

// handleListRuns lists recorded runs
// @Summary List recorded runs
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of runs"
// @Success 200 {object} RunsResponse
// @Failure 400 {object} ErrorResponse "Invalid limit"
// @Failure 503 {object} ErrorResponse "Run history disabled"
// @Router /api/v1/runs [get]
func handleListRuns(history RunHistory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			respondJSON(w, r, http.StatusServiceUnavailable, ErrorResponse{Error: ErrMsgHistoryDisabled})
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidLimit})
				return
			}
			limit = n
		}

		runs, err := history.Recent(r.Context(), limit)
		if err != nil {
			respondJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		if runs == nil {
			runs = []repository.RunLogEntry{}
		}
		respondJSON(w, r, http.StatusOK, RunsResponse{Runs: runs})
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEncodeFailed, "error", err)
	}
}
