// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// readinessTimeout bounds every dependency check of /ready.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// checkResult is the outcome of one readiness check.
type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "Service is alive", map[string]string{
		constants.FieldStatus: "ok",
		constants.FieldApp:    constants.AppName,
	})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, 0, 2)
	isSystemReady := true

	run := func(name string, check func(context.Context) error) {
		if check == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := check(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.ErrorContext(ctx, "readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	run("postgres", handler.dependencies.CheckDatabase)
	run("redis", handler.dependencies.CheckCache)

	data := map[string]any{constants.FieldChecks: results}

	if !isSystemReady {
		data[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.Envelope{
			Status:  http.StatusServiceUnavailable,
			Version: constants.APIVersion,
			Message: "Service is not ready",
			Success: false,
			Data:    data,
		})
		return
	}

	data[constants.FieldStatus] = "ready"
	respond.OK(writer, "Service is ready", data)
}
