package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	appconfig "portfolio-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the slice of the S3 client the mirror needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Mirror copies uploaded originals into a Cloudflare R2 bucket.
type R2Mirror struct {
	client     objectPutter
	bucket     string
	publicBase string
}

// NewR2Mirror builds an S3 client pointed at the account's R2 endpoint.
func NewR2Mirror(ctx context.Context, cfg appconfig.R2Config) (*R2Mirror, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing required R2 settings")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Mirror{client: client, bucket: cfg.Bucket, publicBase: cfg.PublicURL}, nil
}

// Upload stores data under key and returns its public URL.
func (m *R2Mirror) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return m.publicURL(key), nil
}

func (m *R2Mirror) publicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.TrimRight(m.publicBase, "/") + "/" + strings.Join(parts, "/")
}
