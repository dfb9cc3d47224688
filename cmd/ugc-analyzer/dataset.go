package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ugc-analyzer/internal/application"
	"github.com/bryanwahyu/ugc-analyzer/internal/application/dataset"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
	"github.com/bryanwahyu/ugc-analyzer/internal/infra/executor/media"
	"github.com/bryanwahyu/ugc-analyzer/internal/infra/storage"
)

func (a *app) datasetService(ctx context.Context) (*dataset.Service, error) {
	src, err := storage.Open(ctx, a.file, a.minioOptions())
	if err != nil {
		return nil, err
	}
	return &dataset.Service{
		Source: src,
		Media: media.NewRunner(media.Binaries{
			YtDLP:   a.cfg.Media.YtDLP,
			FFmpeg:  a.cfg.Media.FFmpeg,
			Whisper: a.cfg.Media.Whisper,
		}),
		Clock:  application.SystemClock{},
		Logger: a.log,
	}, nil
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every line of the ad store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.datasetService(cmd.Context())
			if err != nil {
				return err
			}
			issues, err := svc.Validate(cmd.Context())
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintln(a.stdout, "OK")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintln(a.stdout, issue)
			}
			return exitCode(1)
		},
	}
}

func (a *app) hooksCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List the most frequent hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.datasetService(cmd.Context())
			if err != nil {
				return err
			}
			hooks, err := svc.Hooks(cmd.Context(), top)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "TOP HOOKS (%s):\n", a.cfg.Review.Language)
			for _, h := range hooks {
				fmt.Fprintf(a.stdout, "%d\t%s\n", h.Count, h.Hook)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", dataset.DefaultTopHooks, "number of hooks to list")
	return cmd
}

func (a *app) ingestCmd() *cobra.Command {
	var (
		req   ads.IngestRequest
		terms string
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Transcribe a video and append it to the ad store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := storage.ParseLocation(a.file)
			if err != nil {
				return err
			}
			if loc.Remote() {
				return ads.ErrReadOnlyStore
			}
			svc, err := a.datasetService(cmd.Context())
			if err != nil {
				return err
			}
			req.TermsOK = ads.ParseTermsOK(terms)
			res, err := svc.Ingest(cmd.Context(), req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetEscapeHTML(false)
			return enc.Encode(res)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.URL, "url", "", "video URL")
	f.StringVar(&req.UGCType, "ugc-type", "", "content format, e.g. testimonial")
	f.StringVar(&req.Brand, "brand", "", "brand name")
	f.StringVar(&req.Category, "category", "", "product category")
	f.StringVar(&req.Language, "language", dataset.DefaultLanguage, "spoken language")
	f.StringVar(&terms, "terms-ok", "false", "usage terms accepted (1/true/yes/y)")
	f.StringVar(&req.WhisperModel, "whisper-model", dataset.DefaultWhisper, "whisper model name")
	f.StringVar(&req.AspectRatio, "aspect-ratio", dataset.DefaultAspectRatio, "video aspect ratio")
	f.StringVar(&req.TranscriptPath, "transcript", "", "read the script from this file instead of transcribing")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("ugc-type")
	return cmd
}
