package services

import (
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sidrapp/sidr-be/config"
)

// S3Bucket is the MediaStore for any S3 compatible object store.
type S3Bucket struct {
	client *minio.Client
	bucket string
}

func NewS3Bucket(cfg *config.StorageConfig) (*S3Bucket, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.S3.Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		Secure: cfg.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &S3Bucket{client: client, bucket: cfg.Bucket}, nil
}

func (sb *S3Bucket) Exists(ctx context.Context, path string) (bool, error) {
	key := objectKey(sb.bucket, path)
	if key == "" {
		return false, nil
	}
	if _, err := sb.client.StatObject(ctx, sb.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
