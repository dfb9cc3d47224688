package ads

import (
	"context"
	"io"
)

// Source port for wherever the line-delimited store lives.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Media port for the download → audio → transcript pipeline used by ingest.
type Media interface {
	Download(ctx context.Context, url, dir string) (Download, error)
	ExtractAudio(ctx context.Context, videoPath, dir string) (string, error)
	Transcribe(ctx context.Context, audioPath, model, dir string) (string, error)
}

// Appender is a Source that can take new lines. Only local stores implement it.
type Appender interface {
	Source
	Append(ctx context.Context, line []byte) error
}
