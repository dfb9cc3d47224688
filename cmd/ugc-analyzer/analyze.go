package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ugc-analyzer/internal/application"
	"github.com/bryanwahyu/ugc-analyzer/internal/application/review"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
	aiclient "github.com/bryanwahyu/ugc-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/ugc-analyzer/internal/infra/storage"
	"github.com/bryanwahyu/ugc-analyzer/internal/logger"
)

type analyzeOptions struct {
	id          string
	urlContains string
	model       string
	temperature float32
	strict      bool
}

func (a *app) rootCmd() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:           "ugc-analyzer",
		Short:         "Analyze one UGC ad from a JSONL store with an OpenAI model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.New(a.logLevel, a.logFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.analyze(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.file, "file", a.cfg.Dataset.File, "ad store: local path or minio://bucket/key")
	pf.StringVar(&a.logLevel, "log-level", a.cfg.Log.Level, "debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", a.cfg.Log.Format, "console or json")

	f := cmd.Flags()
	f.StringVar(&opts.id, "id", "", "ad id, e.g. br_001")
	f.StringVar(&opts.urlContains, "url-contains", "", "substring to match against video_url")
	f.StringVar(&opts.model, "model", a.cfg.OpenAI.Model, "OpenAI model")
	f.Float32Var(&opts.temperature, "temperature", 0.2, "sampling temperature")
	f.BoolVar(&opts.strict, "strict", false, "fail when the result does not match the analysis schema")

	cmd.AddCommand(a.validateCmd(), a.hooksCmd(), a.ingestCmd())
	return cmd
}

func (a *app) analyze(ctx context.Context, opts analyzeOptions) error {
	criteria := ads.Criteria{ID: opts.id, URLContains: opts.urlContains}
	if criteria.Empty() {
		return ads.ErrNoCriteria
	}
	if a.cfg.OpenAI.APIKey == "" {
		return errMissingAPIKey
	}

	src, err := storage.Open(ctx, a.file, a.minioOptions())
	if err != nil {
		return err
	}

	svc := &review.Service{
		Source:   src,
		Streamer: aiclient.NewClient(a.cfg.OpenAI.APIKey, a.cfg.OpenAI.BaseURL, opts.model, a.cfg.OpenAI.MaxTokens),
		Out:      a.stdout,
		Logger:   a.log,
		Clock:    application.SystemClock{},
		Language: a.cfg.Review.Language,
	}
	_, err = svc.Analyze(ctx, review.AnalyzeCommand{
		Criteria:    criteria,
		Model:       opts.model,
		Temperature: opts.temperature,
		Strict:      opts.strict,
	})
	return err
}
