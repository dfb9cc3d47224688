package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/ugc-analyzer/internal/application"
	domain "github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
)

const (
	DefaultTopHooks    = 20
	DefaultAspectRatio = "9:16"
	DefaultLanguage    = "pt-BR"
	DefaultWhisper     = "small"
)

// Service implements the maintenance use cases over the ad store.
type Service struct {
	Source domain.Source
	Media  domain.Media
	Clock  application.Clock
	Logger *zap.Logger
	// TempDir is where ingest scratch directories are created. Empty means os.TempDir.
	TempDir string
}

// Validate lints every line of the store.
func (s *Service) Validate(ctx context.Context) ([]domain.Issue, error) {
	rc, err := s.Source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Source, err)
	}
	defer rc.Close()
	return domain.Lint(rc)
}

// Hooks returns the n most frequent hooks. n <= 0 uses DefaultTopHooks.
// A store that does not exist yet has no hooks.
func (s *Service) Hooks(ctx context.Context, n int) ([]domain.HookCount, error) {
	if n <= 0 {
		n = DefaultTopHooks
	}
	rc, err := s.Source.Open(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Source, err)
	}
	defer rc.Close()
	return domain.TopHooks(rc, n)
}

// Ingest transcribes a video (or reads a prepared transcript), derives hook
// and CTA, and appends a new record to the local store.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (domain.IngestResult, error) {
	store, ok := s.Source.(domain.Appender)
	if !ok {
		return domain.IngestResult{}, domain.ErrReadOnlyStore
	}
	if req.URL == "" {
		return domain.IngestResult{}, errors.New("url is required")
	}
	if !domain.IsUGCType(req.UGCType) {
		return domain.IngestResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidUGCType, req.UGCType)
	}

	var (
		script   string
		caption  string
		duration *float64
	)
	if req.TranscriptPath != "" {
		b, err := os.ReadFile(req.TranscriptPath)
		if err != nil {
			return domain.IngestResult{}, fmt.Errorf("read transcript: %w", err)
		}
		script = domain.Clean(string(b))
	} else {
		dl, text, err := s.transcribe(ctx, req)
		if err != nil {
			return domain.IngestResult{}, err
		}
		script, caption, duration = text, domain.Clean(dl.Description), dl.DurationSec
	}
	if script == "" {
		return domain.IngestResult{}, domain.ErrEmptyTranscript
	}

	id, err := s.nextID(ctx, store)
	if err != nil {
		return domain.IngestResult{}, err
	}

	rec := domain.Record{
		ID:          id,
		Platform:    domain.DetectPlatform(req.URL),
		Brand:       domain.Clean(req.Brand),
		Category:    domain.Clean(req.Category),
		Language:    orDefault(req.Language, DefaultLanguage),
		UGCType:     req.UGCType,
		VideoURL:    req.URL,
		HookText:    domain.GuessHook(script),
		CTAText:     domain.GuessCTA(script),
		ScriptText:  script,
		DurationSec: duration,
		AspectRatio: orDefault(req.AspectRatio, DefaultAspectRatio),
		TermsOK:     req.TermsOK,
		Notes:       "auto-ingest via ugc-analyzer " + s.clock().Now().UTC().Format(time.RFC3339),
	}
	if caption != "" {
		rec.CaptionText = &caption
	}

	line, err := marshalLine(rec)
	if err != nil {
		return domain.IngestResult{}, err
	}
	if err := store.Append(ctx, line); err != nil {
		return domain.IngestResult{}, fmt.Errorf("append %s: %w", store, err)
	}
	s.logger().Info("record ingested", zap.String("id", rec.ID), zap.String("platform", rec.Platform))

	return domain.IngestResult{
		Status:   "ok",
		ID:       rec.ID,
		Platform: rec.Platform,
		HookText: rec.HookText,
		CTAText:  rec.CTAText,
	}, nil
}

func (s *Service) transcribe(ctx context.Context, req domain.IngestRequest) (domain.Download, string, error) {
	if s.Media == nil {
		return domain.Download{}, "", errors.New("no media runner configured")
	}
	tmp, err := os.MkdirTemp(s.TempDir, "ingest_")
	if err != nil {
		return domain.Download{}, "", err
	}
	defer os.RemoveAll(tmp)

	log := s.logger().With(zap.String("url", req.URL))
	log.Debug("downloading video")
	dl, err := s.Media.Download(ctx, req.URL, tmp)
	if err != nil {
		return domain.Download{}, "", fmt.Errorf("download: %w", err)
	}
	log.Debug("extracting audio", zap.String("video", dl.VideoPath))
	wav, err := s.Media.ExtractAudio(ctx, dl.VideoPath, tmp)
	if err != nil {
		return domain.Download{}, "", fmt.Errorf("extract audio: %w", err)
	}
	log.Debug("transcribing", zap.String("model", orDefault(req.WhisperModel, DefaultWhisper)))
	text, err := s.Media.Transcribe(ctx, wav, orDefault(req.WhisperModel, DefaultWhisper), tmp)
	if err != nil {
		return domain.Download{}, "", fmt.Errorf("transcribe: %w", err)
	}
	return dl, text, nil
}

// nextID treats a store that does not exist yet as empty.
func (s *Service) nextID(ctx context.Context, store domain.Source) (string, error) {
	rc, err := store.Open(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NextID(nil)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", store, err)
	}
	defer rc.Close()
	return domain.NextID(rc)
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

func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
