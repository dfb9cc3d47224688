package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	domain "github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
)

// Binaries names the external tools; empty fields fall back to PATH lookups.
type Binaries struct {
	YtDLP   string
	FFmpeg  string
	Whisper string
}

type execFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type Runner struct {
	bin  Binaries
	exec execFunc
}

func NewRunner(bin Binaries) *Runner {
	if bin.YtDLP == "" {
		bin.YtDLP = "yt-dlp"
	}
	if bin.FFmpeg == "" {
		bin.FFmpeg = "ffmpeg"
	}
	if bin.Whisper == "" {
		bin.Whisper = "whisper"
	}
	return &Runner{bin: bin, exec: run}
}

// Download fetches a single video into dir and returns its info.
func (r *Runner) Download(ctx context.Context, url, dir string) (domain.Download, error) {
	out, err := r.exec(ctx, r.bin.YtDLP,
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		"-f", "mp4/best",
		"--no-playlist",
		"--quiet",
		"--no-check-certificates",
		"--geo-bypass",
		"--dump-json", "--no-simulate",
		url,
	)
	if err != nil {
		return domain.Download{}, err
	}
	return parseInfo(out, dir)
}

// ExtractAudio converts the video to 16 kHz mono PCM for transcription.
func (r *Runner) ExtractAudio(ctx context.Context, videoPath, dir string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	wav := filepath.Join(dir, stem+".wav")
	if _, err := r.exec(ctx, r.bin.FFmpeg,
		"-i", videoPath,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		wav,
	); err != nil {
		return "", err
	}
	return wav, nil
}

// Transcribe runs the whisper CLI in Portuguese and returns the cleaned text.
func (r *Runner) Transcribe(ctx context.Context, audioPath, model, dir string) (string, error) {
	if model == "" {
		model = "small"
	}
	if _, err := r.exec(ctx, r.bin.Whisper, audioPath,
		"--model", model,
		"--language", "pt",
		"--output_format", "txt",
		"--output_dir", dir,
	); err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	b, err := os.ReadFile(filepath.Join(dir, stem+".txt"))
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return domain.Clean(string(b)), nil
}

type videoInfo struct {
	ID          string   `json:"id"`
	Ext         string   `json:"ext"`
	Filename    string   `json:"_filename"`
	Duration    *float64 `json:"duration"`
	Description string   `json:"description"`
}

// parseInfo reads the last JSON line yt-dlp printed.
func parseInfo(out []byte, dir string) (domain.Download, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return domain.Download{}, fmt.Errorf("yt-dlp printed no video info")
	}
	var info videoInfo
	if err := json.Unmarshal([]byte(last), &info); err != nil {
		return domain.Download{}, fmt.Errorf("parse yt-dlp info: %w", err)
	}

	video := info.Filename
	if video == "" {
		id := info.ID
		if id == "" {
			id = "*"
		}
		matches, _ := filepath.Glob(filepath.Join(dir, id+".*"))
		if len(matches) > 0 {
			video = matches[0]
		}
	}
	if video == "" {
		return domain.Download{}, fmt.Errorf("download failed: no video file")
	}
	if _, err := os.Stat(video); err != nil {
		return domain.Download{}, fmt.Errorf("download failed: %w", err)
	}

	d := domain.Download{VideoPath: video, Description: info.Description}
	if info.Duration != nil {
		sec := math.Trunc(*info.Duration)
		d.DurationSec = &sec
	}
	return d, nil
}

func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("run %s: %v, output=%s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

var _ domain.Media = (*Runner)(nil)
