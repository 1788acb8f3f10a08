package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
	"github.com/Bahjat/seo-insight/internal/platform/requestid"
)

// Service orchestrates an SEOProvider, logs results and records metrics.
type Service struct {
	provider SEOProvider
	observer AnalysisObserver
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider. observer may be nil.
func NewService(provider SEOProvider, observer AnalysisObserver, logger *slog.Logger) *Service {
	return &Service{provider: provider, observer: observer, logger: logger}
}

// Analyze delegates to the provider and logs the outcome.
func (s *Service) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	logger := s.logger.With("url", req.URL, "keyword", req.Keyword, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	result, err := s.provider.Analyze(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Analysis timed out. The target URL may be slow to respond.",
				Cause:   err,
			}
		}

		attrs := []any{"error", err, "kind", errs.KindOf(err).String()}
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
			attrs = append(attrs, "target_status", appErr.UpstreamStatus)
		}
		score := -1
		if result != nil {
			score = result.SEOScore
			attrs = append(attrs, "seo_score", score)
		}
		logger.Error("analysis failed", attrs...)
		s.observe(errs.KindOf(err).String(), score, time.Since(start))
		return result, err
	}

	logger.Info("analysis complete",
		"status_code", result.StatusCode,
		"content_size", result.ContentSize,
		"response_time", result.ResponseTime,
		"seo_score", result.SEOScore,
		"keyword_density", result.KeywordDensity,
		"internal_links", len(result.InternalLinks),
		"external_links", len(result.ExternalLinks),
		"structured_data_blocks", len(result.StructuredData),
	)
	s.observe("ok", result.SEOScore, time.Since(start))
	return result, nil
}

func (s *Service) observe(outcome string, score int, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveAnalysis(outcome, score, elapsed)
	}
}
