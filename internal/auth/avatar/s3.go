package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config points at an S3-compatible bucket (AWS, MinIO, R2, ...).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // empty for AWS
	AccessKey string
	SecretKey string

	// PublicBaseURL prefixes object keys in returned URLs. When empty the URL
	// is derived from the endpoint (path style) or the AWS virtual host.
	PublicBaseURL string
}

// S3Store uploads avatars with PutObject.
type S3Store struct {
	client *s3.Client
	cfg    S3Config
	now    func() time.Time
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("avatar: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("avatar: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg, now: time.Now}, nil
}

func (s *S3Store) Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	data, sniffed, err := readImage(contentType, body, size)
	if err != nil {
		return "", err
	}

	key := s.objectKey(sniffed)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(sniffed),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("avatar: put object: %w", err)
	}
	return s.publicURL(key), nil
}

// Delete removes an uploaded avatar. URLs outside this store are rejected.
func (s *S3Store) Delete(ctx context.Context, u string) error {
	key, ok := s.keyFromURL(u)
	if !ok {
		return fmt.Errorf("avatar: %q is not an object in this store", u)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("avatar: delete object: %w", err)
	}
	return nil
}

func (s *S3Store) keyFromURL(u string) (string, bool) {
	prefix := strings.TrimSuffix(s.publicURL("k"), "k")
	key, found := strings.CutPrefix(u, prefix)
	if !found || !strings.HasPrefix(key, "avatars/") {
		return "", false
	}
	return key, true
}

func (s *S3Store) objectKey(contentType string) string {
	d := s.now().UTC()
	return fmt.Sprintf("avatars/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), extensionFor(contentType))
}

func (s *S3Store) publicURL(key string) string {
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		u, err := url.JoinPath(s.cfg.Endpoint, s.cfg.Bucket, key)
		if err == nil {
			return u
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
