// Package imagestore adapts an S3-compatible object store for hosting
// offer images. The service layer only sees upload and delete of opaque
// content keyed by a folder scheme; everything provider-specific lives here.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jdavril/brocante/internal/common"
)

// SDK entry points wrapped in vars so tests can stub them.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
)

// Config holds the location and credentials of the image host.
type Config struct {
	// Endpoint is the base URL of the S3-compatible host.
	Endpoint string
	// Region is the region the host expects to be addressed with.
	Region string
	// Bucket is the bucket offer images live in.
	Bucket string
	// AccessKey and SecretKey are static credentials.
	AccessKey string
	SecretKey string
}

// Store uploads and deletes offer images on an S3-compatible host.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// New builds a Store from static credentials against a custom endpoint.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket,
	}, nil
}

// Upload stores body under key and returns the stable content URL.
// Failures are reported as common.ErrUpload.
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpload, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object a previously returned content URL points at.
// Failures are reported as common.ErrDelete.
func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("%w: url %q is not hosted by this store", common.ErrDelete, url)
	}

	_, err := deleteObject(s.client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelete, err)
	}
	return nil
}
