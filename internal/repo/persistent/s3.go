package persistent

import (
	"bytes"
	"context"
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3ArtifactRepo struct {
	*s3client.S3Client
	bucket string
}

func NewS3ArtifactRepo(s3c *s3client.S3Client, bucket string) *S3ArtifactRepo {
	return &S3ArtifactRepo{s3c, bucket}
}

func (r *S3ArtifactRepo) Save(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("S3ArtifactRepo - Save - r.Client.PutObject: %w", err)
	}

	return nil
}
