package model

import (
	"errors"
	"net/url"
	"strings"
)

var (
	errURLRequired     = errors.New("the \"url\" field is required")
	errKeywordRequired = errors.New("the \"keyword\" field is required")
	errURLNotAbsolute  = errors.New("the \"url\" field must be an absolute http or https URL")
)

// AnalysisRequest names the page to analyze and the keyword to measure.
type AnalysisRequest struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword"`
}

// Validate rejects empty fields and URLs that are not absolute http(s).
func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errURLRequired
	}
	if strings.TrimSpace(r.Keyword) == "" {
		return errKeywordRequired
	}

	u, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errURLNotAbsolute
	}
	return nil
}

// SignalSet holds what was extracted from the page markup. Nil pointers mean
// the element or attribute was absent.
type SignalSet struct {
	Title           *string        `json:"title"`
	MetaDescription *string        `json:"meta_description"`
	RobotsContent   *string        `json:"robots_content"`
	Headings        map[string]int `json:"headings"`
	MobileFriendly  bool           `json:"mobile_friendly"`
	StructuredData  []any          `json:"structured_data"`
	InternalLinks   []string       `json:"internal_links"`
	ExternalLinks   []string       `json:"external_links"`
}

// Deduction is one scoring rule that fired.
type Deduction struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// AnalysisResult holds the complete result of analyzing a web page.
type AnalysisResult struct {
	URL          string  `json:"url"`
	StatusCode   int     `json:"status_code"`
	ContentSize  int     `json:"content_size"`
	ResponseTime float64 `json:"response_time"`

	SignalSet

	Keyword        string      `json:"keyword"`
	KeywordDensity float64     `json:"keyword_density"`
	SEOScore       int         `json:"seo_score"`
	Deductions     []Deduction `json:"deductions"`
	Summary        string      `json:"summary"`
}

// ErrorResponse is the JSON shape returned on failure. Partial is set when
// the analysis got as far as scoring before failing.
type ErrorResponse struct {
	Error      string          `json:"error"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Partial    *AnalysisResult `json:"partial,omitempty"`
}
