package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StorageService stores detail attachments in an S3-compatible bucket.
// When no credentials are configured the service is disabled and attachment
// uploads are rejected.
type StorageService struct {
	client *s3.Client
	bucket string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.Storage.AccessKey == "" || cfg.Storage.Bucket == "" {
		return &StorageService{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure storage client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &StorageService{client: client, bucket: cfg.Storage.Bucket}, nil
}

func (s *StorageService) Enabled() bool {
	return s.client != nil
}

// Upload stores an attachment and returns its object key.
func (s *StorageService) Upload(ctx context.Context, inquiryID int, filename, contentType string, data []byte) (string, error) {
	if s.client == nil {
		return "", apperrors.Validation("attachment storage is not configured")
	}

	key := fmt.Sprintf("attachments/%d/%s_%s_%s",
		inquiryID, time.Now().Format("20060102_150405"), uuid.NewString()[:8], filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return key, nil
}

// Download fetches an attachment by object key.
func (s *StorageService) Download(ctx context.Context, key string) ([]byte, string, error) {
	if s.client == nil {
		return nil, "", apperrors.NotFound("attachment storage is not configured")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", apperrors.NotFound("attachment %s not found", key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return data, contentType, nil
}
