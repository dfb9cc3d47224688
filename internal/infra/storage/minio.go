package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions holds the S3-compatible endpoint settings.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

type Store struct {
	client     *minio.Client
	bucketName string
}

// New buat koneksi MinIO ke bucket yang sudah ada
func New(ctx context.Context, opts MinioOptions, bucket string) (*Store, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &Store{client: cli, bucketName: bucket}, nil
}

// Open streams one object. The object is stat'ed first so a missing key fails here
// instead of on the first read.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("stat %s/%s: %w", s.bucketName, key, err)
	}
	return obj, nil
}

// ObjectSource reads the ad store from a bucket object.
type ObjectSource struct {
	Store *Store
	Key   string
}

func (o ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return o.Store.Open(ctx, o.Key)
}

func (o ObjectSource) String() string {
	return fmt.Sprintf("%s://%s/%s", SchemeMinio, o.Store.bucketName, o.Key)
}
