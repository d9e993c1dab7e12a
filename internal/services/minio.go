package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ImageStorage stores product images in a MinIO bucket and hands back the
// public URL the mobile client embeds in product records.
type ImageStorage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewImageStorage(client *minio.Client, bucket, endpoint string, useSSL bool) *ImageStorage {
	return &ImageStorage{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}
}

// SaveImage uploads the file under a fresh UUID object name, keeping the
// original extension for content-type sniffing on the CDN side.
func (s *ImageStorage) SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	object := "products/" + uuid.New().String() + filepath.Ext(file.Filename)

	_, err = s.client.PutObject(ctx, s.bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, object), nil
}
