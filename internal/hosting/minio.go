package hosting

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioHost stores images in an S3-compatible bucket and serves them by
// public object URL. The bucket must allow anonymous reads.
type MinioHost struct {
	client *minio.Client
	bucket string
}

var _ ImageHost = (*MinioHost)(nil)

// NewMinioHost connects to the object store and ensures the bucket exists.
func NewMinioHost(ctx context.Context, endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioHost, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioHost{client: cli, bucket: bucket}, nil
}

// Upload decodes the base64 payload, stores it under a random key and
// returns the object URL.
func (h *MinioHost) Upload(ctx context.Context, imageBase64 string) (string, error) {
	data, err := decodeImage(imageBase64)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	key := uuid.New().String() + extensionFor(contentType)

	_, err = h.client.PutObject(ctx, h.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", h.client.EndpointURL(), h.bucket, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
