package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
	PresignTTL time.Duration
}

// NewS3Config builds an S3 client from the default AWS credential chain. It
// returns nil without an error when no bucket is configured.
func NewS3Config(ctx context.Context, cfg ImagesConfig) (*S3Config, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.Bucket,
		Region:     cfg.Region,
		PresignTTL: cfg.PresignTTL,
	}, nil
}

// PublicURL is the virtual-hosted URL of an object in a public bucket.
func (s *S3Config) PublicURL(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, objectKey)
}

// ObjectURL returns a presigned GET URL when PresignTTL is set and the public
// URL otherwise.
func (s *S3Config) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	if s.PresignTTL <= 0 {
		return s.PublicURL(objectKey), nil
	}
	presignClient := s3.NewPresignClient(s.Client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectKey, err)
	}
	return req.URL, nil
}
