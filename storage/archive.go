package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
)

// AudioArchive keeps a copy of uploaded audio and returns the object key it was stored under.
type AudioArchive interface {
	Put(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioArchive struct {
	client objectPutter
	bucket string
	newID  func() string
}

func NewMinIOArchive(client *minio.Client, bucket string) AudioArchive {
	return newMinIOArchive(client, bucket)
}

func newMinIOArchive(client objectPutter, bucket string) *minioArchive {
	return &minioArchive{
		client: client,
		bucket: bucket,
		newID:  func() string { return uuid.NewString() },
	}
}

func (a *minioArchive) Put(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error) {
	objectName := a.objectName(ownerID, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put %s into bucket %s: %w", objectName, a.bucket, err)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", a.bucket).Str("key", info.Key).Int64("size", info.Size).Msg("audio archived")
	return objectName, nil
}

// objectName yields audio/<owner>/<uuid><ext>; the owner segment is sanitised so it
// cannot climb out of its prefix.
func (a *minioArchive) objectName(ownerID, filename string) string {
	owner := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(ownerID)
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("audio", owner, a.newID()+ext)
}
