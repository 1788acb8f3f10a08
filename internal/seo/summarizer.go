package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

var errEmptyCompletion = errors.New("summarization service returned no text")

// Completer sends one prompt to a text-generation service and returns the
// first candidate's text.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Summarizer turns a scored analysis into one descriptive sentence.
type Summarizer struct {
	completer Completer
	maxTokens int
}

// NewSummarizer returns a Summarizer that asks completer for at most maxTokens tokens.
func NewSummarizer(completer Completer, maxTokens int) *Summarizer {
	return &Summarizer{completer: completer, maxTokens: maxTokens}
}

// Summarize builds the prompt from res and returns the trimmed completion.
func (s *Summarizer) Summarize(ctx context.Context, res *model.AnalysisResult) (string, error) {
	subject := res.URL
	if res.Title != nil {
		if title := strings.TrimSpace(*res.Title); title != "" {
			subject = title
		}
	}

	text, err := s.completer.Complete(ctx, BuildPrompt(subject, res.Keyword, res.SEOScore), s.maxTokens)
	if err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			return "", &errs.AppError{
				Kind:    errs.Misconfigured,
				Message: "The summarization service is not configured.",
				Cause:   err,
			}
		}
		return "", &errs.AppError{
			Kind:    errs.Summary,
			Message: "The summarization service failed to describe the analysis.",
			Cause:   err,
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &errs.AppError{
			Kind:    errs.Summary,
			Message: "The summarization service failed to describe the analysis.",
			Cause:   errEmptyCompletion,
		}
	}
	return text, nil
}

// BuildPrompt formats the summary request for a page.
func BuildPrompt(subject, keyword string, score int) string {
	return fmt.Sprintf("SEO analysis for %s with keyword '%s'. The website has a SEO score of %d.",
		subject, keyword, score)
}
