package services

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// MediaStore answers whether an uploaded object exists. Uploads go straight
// to the bucket from the client; the API only stores the object key.
type MediaStore interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// objectKey strips a leading slash or a gs:// / s3:// bucket prefix so a
// full object URL and a bare key resolve to the same object.
func objectKey(bucket string, path string) string {
	for _, scheme := range []string{"gs://", "s3://"} {
		if rest, ok := strings.CutPrefix(path, scheme+bucket+"/"); ok {
			return rest
		}
	}
	return strings.TrimPrefix(path, "/")
}

// StorageBucket is the firebase (GCS) bucket holding user uploads.
type StorageBucket struct {
	handle *storage.BucketHandle
	name   string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	handle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &StorageBucket{handle: handle, name: bucketName}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, path string) (bool, error) {
	key := objectKey(sb.name, path)
	if key == "" {
		return false, nil
	}
	if _, err := sb.handle.Object(key).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
