package samples

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pithecene-io/tagstream/iox"
	"github.com/pithecene-io/tagstream/types"
)

// S3Config holds configuration for reading corpora from S3.
type S3Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string
	// Prefix is the key prefix within the bucket (optional).
	Prefix string
	// Region is the AWS region (optional, uses default chain if empty).
	Region string
	// Endpoint is a custom S3 endpoint URL for S3-compatible providers
	// (e.g. Cloudflare R2, MinIO). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing (bucket in path, not subdomain).
	// Required by most S3-compatible providers (R2, MinIO, etc.).
	UsePathStyle bool
}

// Validate checks that required S3 configuration is present.
func (c *S3Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("S3 bucket is required")
	}
	return nil
}

// ObjectKey joins the configured prefix and key.
func (c *S3Config) ObjectKey(key string) string {
	if c.Prefix == "" {
		return key
	}
	return path.Join(c.Prefix, key)
}

// ParseS3Path parses a path in format "bucket/prefix" or "bucket".
func ParseS3Path(p string) (bucket, prefix string) {
	parts := strings.SplitN(p, "/", 2)
	bucket = parts[0]
	if len(parts) > 1 {
		prefix = parts[1]
	}
	return bucket, prefix
}

// GetObjectAPI is the subset of the S3 client used by S3Source.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client creates an S3 client.
// Uses AWS SDK default credential chain (env vars, shared config, IAM role).
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsConfig, s3Opts...), nil
}

// S3Source reads samples from one S3 object. Reset closes the current body;
// the object is fetched again on the next Read.
type S3Source struct {
	client GetObjectAPI
	bucket string
	key    string
	format Format
	body   io.ReadCloser
	src    Source
}

// OpenS3 fetches bucket/prefix/key and returns a source over its body.
func OpenS3(ctx context.Context, client GetObjectAPI, cfg S3Config, key string, format Format) (*S3Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &S3Source{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.ObjectKey(key),
		format: format,
	}
	if err := s.open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Location returns "bucket/key".
func (s *S3Source) Location() string {
	return s.bucket + "/" + s.key
}

func (s *S3Source) open(ctx context.Context) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return types.NewSourceReadError("open", fmt.Errorf("s3://%s: %w", s.Location(), err))
	}
	src, err := NewReaderSource(out.Body, s.format)
	if err != nil {
		iox.DiscardClose(out.Body)
		return err
	}
	s.body = out.Body
	s.src = src
	return nil
}

// Read returns the next sample.
func (s *S3Source) Read(ctx context.Context) (*types.Sample, error) {
	if s.src == nil {
		if err := s.open(ctx); err != nil {
			return nil, err
		}
	}
	return s.src.Read(ctx)
}

// Reset releases the current body so the next Read starts over.
func (s *S3Source) Reset() error {
	err := s.Close()
	s.body = nil
	s.src = nil
	if err != nil {
		return types.NewSourceReadError("reset", err)
	}
	return nil
}

// Close releases the object body.
func (s *S3Source) Close() error {
	if s.body == nil {
		return nil
	}
	return s.body.Close()
}

// Verify interface implementations.
var (
	_ Source       = (*S3Source)(nil)
	_ Resetter     = (*S3Source)(nil)
	_ GetObjectAPI = (*s3.Client)(nil)
)
