package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type Storage interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	UploadObject(ctx context.Context, request *requests.UploadFile) (objectName string, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string) error
}
