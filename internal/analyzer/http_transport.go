package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

const analyzeTimeout = 60 * time.Second

// Transport handles HTTP requests for page analysis.
type Transport struct {
	service *Service
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze", t.handleAnalyze)
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a JSON body or a classic url-encoded form with the
// fields url and keyword.
func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	req, ok := t.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := req.Validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	result, err := t.service.Analyze(ctx, req)
	if err != nil {
		t.handleServiceError(w, err, result)
		return
	}

	t.renderJSON(w, http.StatusOK, result)
}

func (t *Transport) decodeRequest(w http.ResponseWriter, r *http.Request) (model.AnalysisRequest, bool) {
	var req model.AnalysisRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			t.renderError(w, http.StatusBadRequest, "Invalid form body.", nil)
			return req, false
		}
		req.URL = r.PostForm.Get("url")
		req.Keyword = r.PostForm.Get("keyword")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest,
			"Invalid request body. Please send a JSON object with \"url\" and \"keyword\" fields.", nil)
		return req, false
	}

	req.URL = strings.TrimSpace(req.URL)
	req.Keyword = strings.TrimSpace(req.Keyword)
	return req, true
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error, partial *model.AnalysisResult) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		t.renderError(w, StatusFor(appErr.Kind), appErr.Message, partial)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.", partial)
}

// StatusFor maps an error kind to the HTTP status reported to clients.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.Validation:
		return http.StatusBadRequest
	case errs.Network, errs.Fetch, errs.Summary:
		return http.StatusBadGateway
	case errs.Timeout:
		return http.StatusGatewayTimeout
	case errs.Parse, errs.Misconfigured, errs.Unknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string, partial *model.AnalysisResult) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
		Partial:    partial,
	})
}
