package services

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// Pipeline names used as log fields and metric labels.
const (
	PipelineShowSearch  = "show_search"
	PipelineEpisodeList = "episode_list"
)

// failSoft unwraps a fetch result. A failure is logged with its cause, counted and
// reported, and degrades to an empty (non-nil) slice.
func failSoft[T any](ctx context.Context, pipeline string, result models.Result[[]T]) []T {
	if result.OK() {
		metrics.PipelineFetchesTotal.WithLabelValues(pipeline, metrics.OutcomeSuccess).Inc()
		if result.Value == nil {
			return []T{}
		}
		return result.Value
	}

	cause := apperrors.Cause(result.Err)
	metrics.PipelineFetchesTotal.WithLabelValues(pipeline, cause).Inc()

	logger := config.GetLogger()
	logger.Warn().
		Err(result.Err).
		Str("pipeline", pipeline).
		Str("cause", cause).
		Msg("Fetch failed, rendering empty result")

	// A cancelled page session is not worth a report.
	if !errors.Is(result.Err, context.Canceled) {
		report(ctx, pipeline, cause, result.Err)
	}

	return []T{}
}

// report sends err to Sentry. Without sentry.Init this is a no-op.
func report(ctx context.Context, pipeline, cause string, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("pipeline", pipeline)
		scope.SetTag("cause", cause)
		hub.CaptureException(err)
	})
}
