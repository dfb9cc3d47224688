package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ugc-analyzer/internal/application"
	domain "github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
)

const line1 = `{"id":"br_007","platform":"tiktok","language":"pt-BR","ugc_type":"testimonial","video_url":"https://tiktok.com/v/7","hook_text":"Você sabia?","cta_text":"c","script_text":"s","terms_ok":true}`

// memStore is an in-memory Appender. A nil data slice means the store does not exist.
type memStore struct {
	data []byte
}

func (m *memStore) Open(ctx context.Context) (io.ReadCloser, error) {
	if m.data == nil {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *memStore) Append(ctx context.Context, line []byte) error {
	m.data = append(m.data, line...)
	m.data = append(m.data, '\n')
	return nil
}

func (m *memStore) String() string { return "memory" }

// readOnly stands in for an object-store source.
type readOnly struct{}

func (readOnly) Open(ctx context.Context) (io.ReadCloser, error) { return nil, fs.ErrNotExist }
func (readOnly) String() string { return "bucket/ads.jsonl" }

type fakeMedia struct {
	dl         domain.Download
	transcript string
	err        error
	dirs       []string
}

func (f *fakeMedia) Download(ctx context.Context, url, dir string) (domain.Download, error) {
	f.dirs = append(f.dirs, dir)
	return f.dl, f.err
}

func (f *fakeMedia) ExtractAudio(ctx context.Context, videoPath, dir string) (string, error) {
	return filepath.Join(dir, "a.wav"), nil
}

func (f *fakeMedia) Transcribe(ctx context.Context, audioPath, model, dir string) (string, error) {
	return f.transcript, nil
}

func lastRecord(t *testing.T, m *memStore) domain.Record {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(string(m.data)), "\n")
	var rec domain.Record
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestValidate(t *testing.T) {
	store := &memStore{data: []byte(line1 + "\n" + strings.Replace(line1, `"terms_ok":true`, `"terms_ok":false`, 1) + "\n")}
	svc := &Service{Source: store}

	issues, err := svc.Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 2, issues[0].Line)
}

func TestValidate_MissingStore(t *testing.T) {
	svc := &Service{Source: &memStore{}}
	_, err := svc.Validate(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestHooks_DefaultLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString(strings.Replace(line1, "Você sabia?", "hook "+string(rune('a'+i)), 1))
		b.WriteString("\n")
	}
	svc := &Service{Source: &memStore{data: []byte(b.String())}}

	got, err := svc.Hooks(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultTopHooks)
}

func TestHooks_MissingStore(t *testing.T) {
	svc := &Service{Source: &memStore{}}
	got, err := svc.Hooks(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIngest_FromTranscript(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(transcript, []byte("Você ainda paga caro no mercado?\nEu economizei 30% esse mês.  Comenta EU QUERO que te mando a planilha.\n"), 0o644))

	store := &memStore{data: []byte(line1 + "\n")}
	svc := &Service{Source: store, Clock: application.FixedClock(time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600)))}

	res, err := svc.Ingest(context.Background(), domain.IngestRequest{
		URL:            "https://www.instagram.com/reel/abc",
		UGCType:        "testimonial",
		Brand:          "  Mercadinho  ",
		TermsOK:        true,
		TranscriptPath: transcript,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngestResult{
		Status:   "ok",
		ID:       "br_008",
		Platform: "reels",
		HookText: "Você ainda paga caro no mercado?",
		CTAText:  "Comenta EU QUERO que te mando a planilha.",
	}, res)

	rec := lastRecord(t, store)
	assert.Equal(t, "br_008", rec.ID)
	assert.Equal(t, "Mercadinho", rec.Brand)
	assert.Equal(t, "pt-BR", rec.Language)
	assert.Equal(t, "9:16", rec.AspectRatio)
	assert.Equal(t, "auto-ingest via ugc-analyzer 2025-03-01T12:30:00Z", rec.Notes)
	assert.Nil(t, rec.CaptionText)
	assert.Nil(t, rec.DurationSec)
	assert.True(t, rec.TermsOK)

	_, report, err := domain.Load(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Valid)
}

func TestIngest_FromMedia(t *testing.T) {
	dur := 31.0
	media := &fakeMedia{
		dl:         domain.Download{VideoPath: "v.mp4", DurationSec: &dur, Description: " link  na bio "},
		transcript: "Olha isso. Link na bio.",
	}
	store := &memStore{}
	svc := &Service{Source: store, Media: media, Clock: application.FixedClock(time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))), TempDir: t.TempDir()}

	res, err := svc.Ingest(context.Background(), domain.IngestRequest{URL: "https://youtu.be/x", UGCType: "review"})
	require.NoError(t, err)
	assert.Equal(t, "br_001", res.ID)
	assert.Equal(t, "shorts", res.Platform)

	rec := lastRecord(t, store)
	require.NotNil(t, rec.CaptionText)
	assert.Equal(t, "link na bio", *rec.CaptionText)
	require.NotNil(t, rec.DurationSec)
	assert.Equal(t, 31.0, *rec.DurationSec)

	require.Len(t, media.dirs, 1)
	_, err = os.Stat(media.dirs[0])
	assert.True(t, errors.Is(err, fs.ErrNotExist), "scratch dir removed")
}

func TestIngest_Rejections(t *testing.T) {
	t.Run("read only store", func(t *testing.T) {
		svc := &Service{Source: readOnly{}}
		_, err := svc.Ingest(context.Background(), domain.IngestRequest{URL: "https://tiktok.com/v", UGCType: "review"})
		assert.ErrorIs(t, err, domain.ErrReadOnlyStore)
	})
	t.Run("bad ugc type", func(t *testing.T) {
		svc := &Service{Source: &memStore{}}
		_, err := svc.Ingest(context.Background(), domain.IngestRequest{URL: "https://tiktok.com/v", UGCType: "meme"})
		assert.ErrorIs(t, err, domain.ErrInvalidUGCType)
	})
	t.Run("empty transcript", func(t *testing.T) {
		store := &memStore{}
		svc := &Service{Source: store, Media: &fakeMedia{transcript: ""}, TempDir: t.TempDir()}
		_, err := svc.Ingest(context.Background(), domain.IngestRequest{URL: "https://tiktok.com/v", UGCType: "review"})
		assert.ErrorIs(t, err, domain.ErrEmptyTranscript)
		assert.Nil(t, store.data)
	})
	t.Run("download failure", func(t *testing.T) {
		svc := &Service{Source: &memStore{}, Media: &fakeMedia{err: errors.New("HTTP 403")}, TempDir: t.TempDir()}
		_, err := svc.Ingest(context.Background(), domain.IngestRequest{URL: "https://tiktok.com/v", UGCType: "review"})
		assert.ErrorContains(t, err, "download: HTTP 403")
	})
}
