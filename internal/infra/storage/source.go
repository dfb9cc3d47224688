package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
)

const (
	SchemeMinio = "minio"
	SchemeS3    = "s3"
)

// Location is a parsed store location: either a local path or bucket/key.
type Location struct {
	Path   string
	Bucket string
	Key    string
}

// Remote reports whether the location points at an object store.
func (l Location) Remote() bool { return l.Bucket != "" }

// ParseLocation accepts a filesystem path or minio://bucket/key (s3:// is an alias).
func ParseLocation(raw string) (Location, error) {
	if !strings.HasPrefix(raw, SchemeMinio+"://") && !strings.HasPrefix(raw, SchemeS3+"://") {
		if strings.TrimSpace(raw) == "" {
			return Location{}, fmt.Errorf("empty store location")
		}
		return Location{Path: raw}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse store location: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("store location %q must look like minio://bucket/key", raw)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Open resolves raw into an ads.Source. Object store sources connect eagerly.
func Open(ctx context.Context, raw string, opts MinioOptions) (ads.Source, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	if !loc.Remote() {
		return FileSource{Path: loc.Path}, nil
	}
	store, err := New(ctx, opts, loc.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio init error: %w", err)
	}
	return ObjectSource{Store: store, Key: loc.Key}, nil
}
