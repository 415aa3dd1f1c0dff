package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "posts/a.png", objectKey("uploads", "posts/a.png"))
	assert.Equal(t, "posts/a.png", objectKey("uploads", "/posts/a.png"))
	assert.Equal(t, "posts/a.png", objectKey("uploads", "gs://uploads/posts/a.png"))
	assert.Equal(t, "posts/a.png", objectKey("uploads", "s3://uploads/posts/a.png"))
	assert.Equal(t, "s3://other/posts/a.png", objectKey("uploads", "s3://other/posts/a.png"))
	assert.Equal(t, "", objectKey("uploads", ""))
}
