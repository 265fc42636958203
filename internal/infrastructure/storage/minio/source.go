// Package minio reads reference documents from MinIO or any S3-compatible
// object store.
package minio

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Config holds the connection parameters of an ObjectSource.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
	Region    string
}

func applyDefaults(cfg *Config) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Prefix != "" && !strings.HasSuffix(cfg.Prefix, "/") {
		cfg.Prefix += "/"
	}
}

// ObjectSource opens objects named <prefix><name> in a single bucket.
type ObjectSource struct {
	client *minio.Client
	cfg    Config
	logger logging.Logger
}

// NewObjectSource builds the client.  No request is made until Open or Check.
func NewObjectSource(cfg Config, logger logging.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	applyDefaults(&cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	return &ObjectSource{client: client, cfg: cfg, logger: logger}, nil
}

// ObjectKey returns the key Open reads for name.
func (s *ObjectSource) ObjectKey(name string) string {
	return s.cfg.Prefix + name
}

// Open fetches the object and returns its body.  The object is stat'ed first
// so that a missing key is reported here rather than on the first Read.
func (s *ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.ObjectKey(name)

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(err, key)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, s.wrap(err, key)
	}

	s.logger.Debug("reference object opened",
		logging.String("bucket", s.cfg.Bucket),
		logging.String("key", key))
	return obj, nil
}

// Check verifies that the bucket exists and is reachable.
func (s *ObjectSource) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "failed to reach object store").
			WithDetail("endpoint=" + s.cfg.Endpoint)
	}
	if !exists {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "bucket not found").
			WithDetail("bucket=" + s.cfg.Bucket)
	}
	return nil
}

func (s *ObjectSource) wrap(err error, key string) error {
	msg := "failed to read reference object"
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		msg = "reference object not found"
	}
	return errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, msg).
		WithDetail("bucket=" + s.cfg.Bucket + " key=" + key)
}

//Personal.AI order the ending
