package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// ObjectStore is the slice of the object store the handler needs.
type ObjectStore interface {
	Fetch(ctx context.Context, bucket, key string) (data []byte, contentType string, err error)
	Store(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// S3Store implements ObjectStore on top of the AWS SDK.
type S3Store struct {
	client s3iface.S3API
}

func NewS3Store(client s3iface.S3API) *S3Store {
	return &S3Store{client: client}
}

// Fetch downloads an object and returns its bytes and content type.
func (s *S3Store) Fetch(ctx context.Context, bucket, key string) ([]byte, string, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return data, aws.StringValue(out.ContentType), nil
}

// Store uploads data under the given bucket and key.
func (s *S3Store) Store(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
