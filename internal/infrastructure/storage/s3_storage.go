// Package storage provides object storage for uploaded portfolio assets.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrForeignURL is returned when a URL does not point into the bucket
var ErrForeignURL = errors.New("url does not belong to the asset bucket")

var _ contentapp.AssetStorage = (*S3AssetStorage)(nil)

// S3AssetStorage stores assets in any S3-compatible bucket (AWS S3, MinIO,
// RustFS, R2) and serves them from a public URL.
type S3AssetStorage struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// S3Option configures S3AssetStorage
type S3Option func(*S3AssetStorage)

// WithLogger sets the storage logger
func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3AssetStorage) {
		s.logger = logger
	}
}

// NewS3AssetStorage creates the storage from configuration. Static
// credentials are used when both keys are set, otherwise the default AWS
// credential chain applies.
func NewS3AssetStorage(cfg *config.StorageConfig, opts ...S3Option) (*S3AssetStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3AssetStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg, endpoint, region),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// publicBaseURL is the URL prefix objects are served from
func publicBaseURL(cfg *config.StorageConfig, endpoint, region string) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case endpoint != "" && cfg.UsePathStyle:
		return endpoint + "/" + cfg.Bucket
	case endpoint != "":
		u, _ := url.Parse(endpoint)
		return u.Scheme + "://" + cfg.Bucket + "." + u.Host
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *S3AssetStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating asset bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores data under key and returns its public URL
func (s *S3AssetStorage) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	// SigV4 over plain HTTP needs a seekable body to hash the payload
	if _, ok := data.(io.ReadSeeker); !ok {
		b, err := io.ReadAll(data)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		data = bytes.NewReader(b)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          data,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Object uploaded", zap.String("bucket", s.bucket), zap.String("key", key))
	return s.PublicURL(key), nil
}

// DeleteByURL removes the object a public URL points to
func (s *S3AssetStorage) DeleteByURL(ctx context.Context, rawURL string) error {
	key, err := KeyFromURL(s.baseURL, rawURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL returns the URL an object is served from
func (s *S3AssetStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Bucket returns the configured bucket name
func (s *S3AssetStorage) Bucket() string {
	return s.bucket
}

// KeyFromURL extracts the object key from a public URL served under
// baseURL. Query strings and fragments are ignored.
func KeyFromURL(baseURL, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid asset url: %w", err)
	}
	u.RawQuery = ""
	u.Fragment = ""

	prefix := strings.TrimRight(baseURL, "/") + "/"
	full := u.String()
	if !strings.HasPrefix(full, prefix) {
		return "", ErrForeignURL
	}
	key, err := url.PathUnescape(strings.TrimPrefix(full, prefix))
	if err != nil {
		return "", fmt.Errorf("invalid asset url: %w", err)
	}
	if key == "" {
		return "", ErrForeignURL
	}
	return key, nil
}
