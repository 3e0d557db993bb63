// Package s3 implements the router's Store collaborator on top of S3,
// PUT-ing the serialized route table to a configured bucket/key on
// every update call.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config configures the S3-backed Store.
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	UsePathStyle    bool
	Timeout         time.Duration
}

// DefaultConfig returns sensible defaults for bucket.
func DefaultConfig(bucket string) Config {
	return Config{Bucket: bucket, Prefix: "router/", Timeout: 30 * time.Second}
}

// Store persists router snapshots in S3. Implements interfaces.Store.
type Store struct {
	cfg    Config
	client *s3.Client
}

// New creates a Store from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("store/s3: load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.BaseEndpoint = aws.String(cfg.Endpoint) })
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}

	return &Store{cfg: cfg, client: s3.NewFromConfig(awsCfg, s3Opts...)}, nil
}

func (s *Store) objectKey(key string) string {
	return s.cfg.Prefix + key + ".json"
}

// Update implements interfaces.Store.
func (s *Store) Update(ctx context.Context, key string, json []byte) error {
	timeout := s.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(json),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("store/s3: put %q: %w", key, err)
	}
	return nil
}
