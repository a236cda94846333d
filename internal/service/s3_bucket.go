package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Service struct {
	BucketName string
	Client     PutObjectAPI
	// PublicBaseURL replaces the bucket's virtual-hosted URL, e.g. a CDN in front of it.
	PublicBaseURL string
}

// NewS3Service loads the default AWS credential chain for region and targets bucket.
func NewS3Service(ctx context.Context, bucket, region, publicBaseURL string) (*S3Service, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &S3Service{
		BucketName:    bucket,
		Client:        s3.NewFromConfig(cfg),
		PublicBaseURL: publicBaseURL,
	}, nil
}

// Put uploads body under key and returns its public URL.
func (s *S3Service) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := buffer.ReadFrom(body); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buffer.Bytes()),
		ContentLength: aws.Int64(int64(buffer.Len())),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return s.URL(key), nil
}

// URL is the public address of key.
func (s *S3Service) URL(key string) string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
}
