package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/matchpoint-app/backend/internal/config"
)

// Service issues presigned S3 URLs for avatar and product images. Clients
// upload directly to the bucket; the server never proxies image bytes.
type Service struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewService(ctx context.Context, cfg *config.MediaConfig) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &Service{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		expiry:    cfg.URLExpiry,
	}, nil
}

// PresignUpload returns a presigned PUT URL and the object key.
func (s *Service) PresignUpload(ctx context.Context, folder, fileName, contentType string) (string, string, error) {
	key := folder + "/" + time.Now().Format("20060102150405") + "-" + fileName

	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	presigned, err := s.presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presigned.URL, key, nil
}

// PresignRead returns a presigned GET URL for an existing object.
func (s *Service) PresignRead(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	presigned, err := s.presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return presigned.URL, nil
}
