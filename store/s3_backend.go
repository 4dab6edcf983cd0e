package store

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures an S3Backend.
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	UsePathStyle bool
}

func (c *S3Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("S3 bucket is required")
	}
	return nil
}

// S3Backend reads challenge data out of an S3 (or S3-compatible)
// bucket.
type S3Backend struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Backend builds a backend using the AWS SDK's default
// credential chain (env vars, shared config, IAM role).
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) { o.BaseEndpoint = &endpoint })
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}

	return &S3Backend{client: s3.NewFromConfig(awsCfg, s3Opts...), cfg: cfg}, nil
}

func (b *S3Backend) Get(ctx context.Context, path string) ([]byte, error) {
	key := path
	if b.cfg.Prefix != "" {
		key = b.cfg.Prefix + "/" + path
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &b.cfg.Bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, wrapError("read", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, wrapError("read", path, err)
	}
	return data, nil
}
