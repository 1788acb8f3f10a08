package seo

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

const tracerName = "github.com/Bahjat/seo-insight/internal/seo"

// summarizer defines how the engine obtains the summary sentence.
type summarizer interface {
	Summarize(ctx context.Context, res *model.AnalysisResult) (string, error)
}

// Engine runs fetch, parse, extract, score and summarize for one page.
// It keeps no per-run state, so one Engine may serve concurrent callers.
type Engine struct {
	fetcher    Fetcher
	summarizer summarizer
	tracer     trace.Tracer
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithTracerProvider records the pipeline spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// NewEngine returns an Engine backed by the given Fetcher and summarizer.
// A nil summarizer leaves the summary empty.
func NewEngine(fetcher Fetcher, s summarizer, opts ...EngineOption) *Engine {
	e := &Engine{
		fetcher:    fetcher,
		summarizer: s,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the pipeline for req. When only the summary step fails the
// scored result is returned together with the error.
func (e *Engine) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	ctx, span := e.tracer.Start(ctx, "seo.Analyze",
		trace.WithAttributes(attribute.String("seo.url", req.URL), attribute.String("seo.keyword", req.Keyword)))
	defer span.End()

	res, err := e.analyze(ctx, req)
	if err != nil {
		failSpan(span, err)
	}
	if res != nil {
		span.SetAttributes(attribute.Int("seo.score", res.SEOScore))
	}
	return res, err
}

func (e *Engine) analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &errs.AppError{Kind: errs.Validation, Message: err.Error(), Cause: err}
	}

	targetURL := strings.TrimSpace(req.URL)
	keyword := strings.TrimSpace(req.Keyword)
	pageURL, err := url.Parse(targetURL)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Validation, Message: "Invalid URL format.", Cause: err}
	}

	fetched, err := e.fetch(ctx, targetURL)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(fetched.Body, fetched.ContentType)
	if err != nil {
		return nil, err
	}

	signals := ExtractSignals(doc, pageURL)
	score, deductions := Score(ScoreInput{
		Title:           signals.Title,
		MetaDescription: signals.MetaDescription,
		RobotsContent:   signals.RobotsContent,
		ContentSize:     len(fetched.Body),
		Elapsed:         fetched.Elapsed,
	})

	res := &model.AnalysisResult{
		URL:            targetURL,
		StatusCode:     fetched.StatusCode,
		ContentSize:    len(fetched.Body),
		ResponseTime:   fetched.ElapsedSeconds(),
		SignalSet:      signals,
		Keyword:        keyword,
		KeywordDensity: KeywordDensity(doc.Text(), keyword),
		SEOScore:       score,
		Deductions:     deductions,
	}

	if e.summarizer == nil {
		return res, nil
	}

	summary, err := e.summarize(ctx, res)
	if err != nil {
		return res, err
	}
	res.Summary = summary
	return res, nil
}

func (e *Engine) fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	ctx, span := e.tracer.Start(ctx, "seo.Fetch")
	defer span.End()

	fetched, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		var appErr *errs.AppError
		if !errors.As(err, &appErr) {
			err = &errs.AppError{
				Kind:    errs.Network,
				Message: "The provided URL could not be reached. Check the address.",
				Cause:   err,
			}
		}
		failSpan(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("http.status_code", fetched.StatusCode),
		attribute.Int("seo.content_size", len(fetched.Body)),
	)
	return fetched, nil
}

func (e *Engine) summarize(ctx context.Context, res *model.AnalysisResult) (string, error) {
	ctx, span := e.tracer.Start(ctx, "seo.Summarize")
	defer span.End()

	summary, err := e.summarizer.Summarize(ctx, res)
	if err != nil {
		failSpan(span, err)
		return "", err
	}
	return summary, nil
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, errs.KindOf(err).String())
}
