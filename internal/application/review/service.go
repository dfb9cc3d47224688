package review

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/ugc-analyzer/internal/application"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/ugc-analyzer/internal/infra/ai/prompt"
)

// Service runs one analysis: load, select, stream, finalize.
type Service struct {
	Source   ads.Source
	Streamer analysis.Streamer
	Out      io.Writer
	Logger   *zap.Logger
	Clock    application.Clock
	Language string
}

type AnalyzeCommand struct {
	Criteria    ads.Criteria
	Model       string
	Temperature float32
	// Strict turns schema violations in the result into an error.
	Strict bool
}

func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (analysis.Result, error) {
	if cmd.Criteria.Empty() {
		return nil, ads.ErrNoCriteria
	}
	log := s.logger().With(zap.String("run_id", uuid.NewString()))
	start := s.clock().Now()

	rc, err := s.Source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Source, err)
	}
	records, report, err := ads.Load(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Source, err)
	}
	log.Debug("records loaded",
		zap.String("source", s.Source.String()),
		zap.Int("lines", report.Lines),
		zap.Int("valid", report.Valid),
		zap.Int("dropped", report.Dropped),
	)

	rec, err := ads.Select(records, cmd.Criteria)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("ad_id", rec.ID))

	language := s.Language
	if language == "" {
		language = prompt.DefaultLanguage
	}
	req, err := prompt.BuildRequest(rec, cmd.Model, language, cmd.Temperature)
	if err != nil {
		return nil, err
	}

	stream, err := s.Streamer.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	text, err := analysis.Collect(stream, s.Out)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(s.Out, "\n"); err != nil {
		return nil, err
	}

	result, err := analysis.Finalize(text, rec.ID)
	if err != nil {
		return nil, err
	}

	if violations := analysis.Validate(result); len(violations) > 0 {
		if cmd.Strict {
			return result, fmt.Errorf("%w: %s", analysis.ErrSchemaViolation, strings.Join(violations, "; "))
		}
		log.Warn("result does not match schema", zap.Strings("violations", violations))
	}

	fields := []zap.Field{
		zap.String("model", req.Model),
		zap.Duration("elapsed", s.clock().Now().Sub(start)),
	}
	if rv, err := result.Review(); err == nil {
		fields = append(fields,
			zap.Float64("score_overall", rv.ScoreOverall),
			zap.String("hook_quality", string(rv.HookQuality)),
			zap.String("cta_quality", string(rv.CTAQuality)),
		)
	}
	log.Debug("analysis done", fields...)
	return result, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) clock() application.Clock {
	if s.Clock == nil {
		return application.SystemClock{}
	}
	return s.Clock
}
