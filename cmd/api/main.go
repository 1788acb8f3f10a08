package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Bahjat/seo-insight/internal/analyzer"
	"github.com/Bahjat/seo-insight/internal/platform/config"
	"github.com/Bahjat/seo-insight/internal/platform/logger"
	"github.com/Bahjat/seo-insight/internal/platform/metrics"
	"github.com/Bahjat/seo-insight/internal/platform/middleware"
	"github.com/Bahjat/seo-insight/internal/platform/tracing"
	"github.com/Bahjat/seo-insight/internal/seo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.AnthropicAPIKey == "" {
		log.Warn("ANTHROPIC_API_KEY is not set; analyses will fail at the summary step")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(cfg.TraceExporter, "seo-insight-api", os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("flushing traces", "error", err)
		}
	}()

	fetcher := seo.NewHTTPClient(cfg.FetchTimeout, cfg.AllowPrivateNetworks)
	completer := seo.NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.SummaryModel)
	engine := seo.NewEngine(fetcher, seo.NewSummarizer(completer, cfg.SummaryMaxTokens))

	recorder := metrics.New()
	svc := analyzer.NewService(engine, recorder, log)

	mux := http.NewServeMux()
	analyzer.NewTransport(svc, log).RegisterRoutes(mux)
	mux.Handle("GET /metrics", recorder.Handler())

	var handler http.Handler = mux
	handler = middleware.Metrics(recorder)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)
	handler = otelhttp.NewHandler(handler, "seo-insight-api")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("the tool started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
