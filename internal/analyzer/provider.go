package analyzer

import (
	"context"
	"time"

	"github.com/Bahjat/seo-insight/internal/model"
)

// SEOProvider defines the contract for any analysis engine. On a partial
// failure it may return a non-nil result together with the error.
type SEOProvider interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error)
}

// AnalysisObserver receives one observation per finished analysis.
type AnalysisObserver interface {
	ObserveAnalysis(outcome string, score int, elapsed time.Duration)
}
