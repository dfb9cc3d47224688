package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
)

// FileSource reads the ad store from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.Path)
}

// Append writes line plus a newline at the end of the file, creating parent
// directories and the file as needed.
func (f FileSource) Append(ctx context.Context, line []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fh, err := os.OpenFile(f.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := fh.Write(append(line[:len(line):len(line)], '\n')); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func (f FileSource) String() string { return f.Path }

var _ ads.Appender = FileSource{}
