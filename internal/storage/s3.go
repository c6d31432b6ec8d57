package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/medidir/doctor-directory-api/internal/config"
)

// S3Store keeps blobs in a public S3/MinIO bucket. Object keys are
// "<folder>/<uuid><ext>" so concurrent uploads never collide.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *slog.Logger
}

// NewS3Store builds a blob store from the application config.
func NewS3Store(cfg *config.Config, logger *slog.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	logger.Info("🪣 [Storage] S3 blob store ready",
		"endpoint", cfg.S3Endpoint,
		"bucket", cfg.S3Bucket,
	)

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

func (s *S3Store) Store(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), strings.ToLower(path.Ext(filename)))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store blob %q: %w", key, err)
	}

	s.logger.Debug("📦 [Storage] Blob stored", "key", key, "content_type", contentType)
	return key, nil
}

func (s *S3Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blob %q: %w", path, err)
	}
	return true, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", path, err)
	}

	s.logger.Debug("🗑️ [Storage] Blob deleted", "key", path)
	return nil
}

// URL renders a storage-relative path as the absolute public address.
func (s *S3Store) URL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, path)
}
