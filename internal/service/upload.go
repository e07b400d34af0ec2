package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	a "bitwise74/social-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectUploader stores a blob under key and returns its public URL
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type S3Uploader struct {
	S3       *a.S3Client
	uploader *manager.Uploader
}

func NewS3Uploader(s *a.S3Client) *S3Uploader {
	return &S3Uploader{
		S3: s,
		uploader: manager.NewUploader(s.C, func(u *manager.Uploader) {
			u.Concurrency = 3
			u.PartSize = 6 << 20
		}),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	zap.L().Debug("Uploading object", zap.String("key", key), zap.String("contentType", contentType))

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       u.S3.Bucket,
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3, %w", key, err)
	}

	return strings.TrimSuffix(u.S3.PublicURL, "/") + "/" + key, nil
}
