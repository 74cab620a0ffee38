package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectPutter is the subset of the S3 client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client objectPutter
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates a new S3-backed image store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return newS3Store(s3.NewFromConfig(cfg), bucket, region, prefix, logger), nil
}

func newS3Store(client objectPutter, bucket, region, prefix string, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}
}

// Save uploads the image and returns its virtual-hosted-style URL.
func (s *s3Store) Save(ctx context.Context, img Image) (string, error) {
	key := s.prefix + objectName(img.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   img.Body,
	}
	if img.ContentType != "" {
		input.ContentType = aws.String(img.ContentType)
	}
	if img.Size > 0 {
		input.ContentLength = aws.Int64(img.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("image uploaded to S3")

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// fallbackStore tries S3 first, then falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then falls back to the local file system.
// If s3Store is nil, it will only use the file store.
func NewFallbackStore(s3Store, fileStore Store, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

// Save attempts S3 first. The body is buffered so a failed upload can be retried locally.
func (s *fallbackStore) Save(ctx context.Context, img Image) (string, error) {
	if !s.s3Enabled || s.s3Store == nil {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local file system")
		return s.fileStore.Save(ctx, img)
	}

	body, err := io.ReadAll(img.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	img.Body = bytes.NewReader(body)
	url, err := s.s3Store.Save(ctx, img)
	if err == nil {
		return url, nil
	}

	s.logger.Warn().
		Err(err).
		Str("filename", img.Filename).
		Msg("failed to upload to S3, falling back to local file system")

	img.Body = bytes.NewReader(body)
	return s.fileStore.Save(ctx, img)
}
