package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Bahjat/seo-insight/internal/analyzer"
	"github.com/Bahjat/seo-insight/internal/model"
	"github.com/Bahjat/seo-insight/internal/platform/config"
	"github.com/Bahjat/seo-insight/internal/platform/errs"
	"github.com/Bahjat/seo-insight/internal/platform/logger"
	"github.com/Bahjat/seo-insight/internal/platform/tracing"
	"github.com/Bahjat/seo-insight/internal/seo"
)

// providerFactory builds the analysis engine from configuration.
type providerFactory func(cfg config.Config, withSummary bool) analyzer.SEOProvider

func defaultProvider(cfg config.Config, withSummary bool) analyzer.SEOProvider {
	fetcher := seo.NewHTTPClient(cfg.FetchTimeout, cfg.AllowPrivateNetworks)
	if !withSummary {
		return seo.NewEngine(fetcher, nil)
	}
	completer := seo.NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.SummaryModel)
	return seo.NewEngine(fetcher, seo.NewSummarizer(completer, cfg.SummaryMaxTokens))
}

func newRootCmd(build providerFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "seoscan",
		Short:         "Score a web page's on-page SEO",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(build))
	return root
}

func newAnalyzeCmd(build providerFactory) *cobra.Command {
	var noSummary bool

	cmd := &cobra.Command{
		Use:   "analyze <url> <keyword>",
		Short: "Fetch one page, score it and summarize the findings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.AnalysisRequest{URL: args[0], Keyword: args[1]}
			if err := req.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "config: %v\n", err)
				return err
			}

			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			shutdownTracing, err := tracing.Setup(cfg.TraceExporter, "seoscan", cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "tracing: %v\n", err)
				return err
			}
			defer func() { _ = shutdownTracing(context.WithoutCancel(cmd.Context())) }()

			svc := analyzer.NewService(build(cfg, !noSummary), nil, log)

			result, err := svc.Analyze(cmd.Context(), req)
			if result != nil {
				if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
					return werr
				}
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", userMessage(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the summarization service call")
	return cmd
}

func userMessage(err error) string {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
