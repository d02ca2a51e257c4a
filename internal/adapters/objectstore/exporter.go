package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// ObjectAPI is the part of the S3 client the exporter uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client builds a client from the default AWS credential chain
// (environment, shared config, instance role).
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("objectstore.NewS3Client: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Exporter writes generated post pages to a bucket as
// {prefix}/posts/{slug}.json, in the same shape the API serves.
type Exporter struct {
	client    ObjectAPI
	bucket    string
	prefix    string
	presenter *api.Presenter
	logger    logger.Logger
}

// NewExporter creates a bucket exporter
func NewExporter(client ObjectAPI, bucket, prefix string, presenter *api.Presenter, logger logger.Logger) *Exporter {
	return &Exporter{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		presenter: presenter,
		logger:    logger,
	}
}

// Key is the object key for slug.
func (e *Exporter) Key(slug string) string {
	return path.Join(e.prefix, "posts", slug+".json")
}

// Export uploads the page.
func (e *Exporter) Export(ctx context.Context, snap domain.Snapshot) error {
	body, err := json.Marshal(e.presenter.Snapshot(snap))
	if err != nil {
		return fmt.Errorf("Exporter.Export: encode %s: %w", snap.Slug, err)
	}

	key := e.Key(snap.Slug)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("Exporter.Export: upload to s3: %w", err)
	}

	e.logger.Debug(ctx, "exported post page", "bucket", e.bucket, "key", key, "bytes", len(body))
	return nil
}

// Remove deletes the exported page. S3 treats deleting a missing key as
// success.
func (e *Exporter) Remove(ctx context.Context, slug string) error {
	key := e.Key(slug)
	_, err := e.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("Exporter.Remove: delete from s3: %w", err)
	}

	e.logger.Debug(ctx, "removed exported post page", "bucket", e.bucket, "key", key)
	return nil
}

var _ ports.SnapshotExporter = (*Exporter)(nil)
