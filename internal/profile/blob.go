package profile

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"wanderlist/internal/platform/config"
	id "wanderlist/pkg/domain"
)

// BlobStore holds avatar images. Implementations return short-lived signed
// URLs; avatar objects are never public.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	SignedURL(ctx context.Context, key string) (string, error)
}

// S3BlobStore stores avatars in an S3-compatible bucket. Works with AWS S3,
// MinIO, and Cloudflare R2 via the custom endpoint.
type S3BlobStore struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	signedURLTTL  time.Duration
}

// NewS3BlobStore builds the client from config. Returns nil when no
// endpoint is configured, which disables avatar storage.
func NewS3BlobStore(ctx context.Context, cfg config.Blob) (*S3BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// Path style is required for MinIO and most S3-compatible services.
		o.UsePathStyle = true
	})

	return &S3BlobStore{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		signedURLTTL:  cfg.SignedURLTTL,
	}, nil
}

func (s *S3BlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put avatar object: %w", err)
	}
	return nil
}

func (s *S3BlobStore) SignedURL(ctx context.Context, key string) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.signedURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign avatar url: %w", err)
	}
	return req.URL, nil
}

// AvatarKey derives the object key for a user's avatar. One object per
// user; uploads overwrite in place.
func AvatarKey(userID id.UserID, contentType string) string {
	ext := "bin"
	switch {
	case strings.HasSuffix(contentType, "jpeg"), strings.HasSuffix(contentType, "jpg"):
		ext = "jpg"
	case strings.HasSuffix(contentType, "png"):
		ext = "png"
	case strings.HasSuffix(contentType, "webp"):
		ext = "webp"
	}
	return fmt.Sprintf("avatars/%s.%s", userID, ext)
}
