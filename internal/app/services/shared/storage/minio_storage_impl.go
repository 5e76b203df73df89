package storage

import (
	"bytes"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.MinioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	if exists {
		return nil
	}

	err = m.MinioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	return nil
}

func (m *minioStorage) UploadObject(ctx context.Context, request *requests.UploadFile) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		request.BucketName,
		request.ObjectName,
		bytes.NewReader(request.Data),
		int64(len(request.Data)),
		minio.PutObjectOptions{
			ContentType: request.ContentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, request.BucketName)
	}

	return request.ObjectName, nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	err := m.MinioClient.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioRemoveObject(err, bucketName)
	}
	return nil
}
