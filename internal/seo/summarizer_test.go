package seo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

var errServiceDown = errors.New("service unavailable")

// stubCompleter implements Completer for testing.
type stubCompleter struct {
	text      string
	err       error
	prompt    string
	maxTokens int
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	s.prompt = prompt
	s.maxTokens = maxTokens
	return s.text, s.err
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"SEO analysis for Example Domain with keyword 'domains'. The website has a SEO score of 80.",
		BuildPrompt("Example Domain", "domains", 80))
}

func TestSummarizer_Summarize(t *testing.T) {
	stub := &stubCompleter{text: "\n  The page is well optimised.  \n"}
	s := NewSummarizer(stub, 100)

	res := &model.AnalysisResult{
		URL:       "https://example.com",
		SignalSet: model.SignalSet{Title: ptr("Example Domain")},
		Keyword:   "domains",
		SEOScore:  90,
	}

	got, err := s.Summarize(context.Background(), res)
	require.NoError(t, err)

	assert.Equal(t, "The page is well optimised.", got)
	assert.Equal(t, 100, stub.maxTokens)
	assert.Equal(t, "SEO analysis for Example Domain with keyword 'domains'. The website has a SEO score of 90.", stub.prompt)
}

func TestSummarizer_UsesURLWithoutTitle(t *testing.T) {
	stub := &stubCompleter{text: "ok"}
	s := NewSummarizer(stub, 50)

	_, err := s.Summarize(context.Background(), &model.AnalysisResult{URL: "https://example.com/x", Keyword: "k"})
	require.NoError(t, err)

	assert.Contains(t, stub.prompt, "SEO analysis for https://example.com/x with keyword 'k'.")
}

func TestSummarizer_TrimsPaddedTitleInPrompt(t *testing.T) {
	stub := &stubCompleter{text: "ok"}

	_, err := NewSummarizer(stub, 50).Summarize(context.Background(), &model.AnalysisResult{
		URL:       "https://example.com/x",
		SignalSet: model.SignalSet{Title: ptr("  Good SEO  ")},
		Keyword:   "seo",
	})
	require.NoError(t, err)

	assert.Contains(t, stub.prompt, "SEO analysis for Good SEO with keyword 'seo'.")
}

func TestSummarizer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stub     *stubCompleter
		wantKind errs.Kind
	}{
		{name: "service failure", stub: &stubCompleter{err: errServiceDown}, wantKind: errs.Summary},
		{name: "blank completion", stub: &stubCompleter{text: "   "}, wantKind: errs.Summary},
		{name: "missing api key", stub: &stubCompleter{err: ErrMissingAPIKey}, wantKind: errs.Misconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSummarizer(tt.stub, 100).Summarize(context.Background(), &model.AnalysisResult{})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
		})
	}
}
