package imagestore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdavril/brocante/internal/common"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), Config{
		Endpoint:  "https://img.example.com/",
		Region:    "eu-west-3",
		Bucket:    "brocante",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	return store
}

func TestNew_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	}

	_, err := New(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config")
}

func TestUpload_ReturnsContentURL(t *testing.T) {
	store := testStore(t)

	orig := putObject
	defer func() { putObject = orig }()

	var gotBucket, gotKey, gotContentType string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		gotContentType = aws.ToString(in.ContentType)
		return &s3.PutObjectOutput{}, nil
	}

	url, err := store.Upload(context.Background(), "offers/o-1/coat.jpg", strings.NewReader("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/brocante/offers/o-1/coat.jpg", url)
	assert.Equal(t, "brocante", gotBucket)
	assert.Equal(t, "offers/o-1/coat.jpg", gotKey)
	assert.Equal(t, "image/jpeg", gotContentType)
}

func TestUpload_Error(t *testing.T) {
	store := testStore(t)

	orig := putObject
	defer func() { putObject = orig }()

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket gone")
	}

	_, err := store.Upload(context.Background(), "offers/o-1/coat.jpg", strings.NewReader("img"), "image/jpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpload)
}

func TestDelete_ExtractsKeyFromURL(t *testing.T) {
	store := testStore(t)

	orig := deleteObject
	defer func() { deleteObject = orig }()

	var gotKey string
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		gotKey = aws.ToString(in.Key)
		return &s3.DeleteObjectOutput{}, nil
	}

	err := store.Delete(context.Background(), "https://img.example.com/brocante/offers/o-1/coat.jpg")
	require.NoError(t, err)
	assert.Equal(t, "offers/o-1/coat.jpg", gotKey)
}

func TestDelete_ForeignURL(t *testing.T) {
	store := testStore(t)

	err := store.Delete(context.Background(), "https://elsewhere.example.com/x.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDelete)
}

func TestDelete_Error(t *testing.T) {
	store := testStore(t)

	orig := deleteObject
	defer func() { deleteObject = orig }()

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("access denied")
	}

	err := store.Delete(context.Background(), "https://img.example.com/brocante/offers/o-1/coat.jpg")
	assert.ErrorIs(t, err, common.ErrDelete)
}
