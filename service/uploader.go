package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/abotl/abotl-backend/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileUpload is a file received from a multipart request.
type FileUpload struct {
	Name string
	Data []byte
}

// MediaUploader stores raw bytes on the media host and returns a public URL.
type MediaUploader interface {
	Upload(ctx context.Context, ownerID uuid.UUID, upload *FileUpload) (string, error)
}

type MinioUploader struct {
	client *minio.Client
	bucket string
}

func NewMinioUploader(ctx context.Context, cfg config.MinIOConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioUploader{client: client, bucket: cfg.BucketName}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, ownerID uuid.UUID, upload *FileUpload) (string, error) {
	ext := filepath.Ext(upload.Name)
	objectName := fmt.Sprintf("%s/%s%s", ownerID.String(), uuid.New().String(), ext)

	_, err := u.client.PutObject(ctx, u.bucket, objectName,
		bytes.NewReader(upload.Data), int64(len(upload.Data)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(upload.Data)})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.client.EndpointURL().String(), u.bucket, objectName), nil
}
