// Package storage archives the raw body of accepted uploads in S3/MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mfenderov/docscan/pkg/models"
)

const uploadsPrefix = "uploads"

// Config holds S3/MinIO client configuration.
type Config struct {
	Endpoint        string // "localhost:9000" for MinIO
	Bucket          string // "docscan"
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// Client wraps the MinIO/S3 client for upload archiving.
type Client struct {
	minioClient *minio.Client
	bucket      string
}

// New creates a new S3/MinIO client.
func New(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	minioClient, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{
		minioClient: minioClient,
		bucket:      config.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.minioClient.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	err = c.minioClient.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ObjectName returns the key an upload is archived under: uploads/<owner>/<id>-<name>.
func ObjectName(owner string, id int64, fileName string) string {
	return path.Join(uploadsPrefix, sanitize(owner), strconv.FormatInt(id, 10)+"-"+sanitize(fileName))
}

// sanitize keeps a path segment from escaping its directory.
func sanitize(segment string) string {
	segment = strings.ReplaceAll(segment, "/", "_")
	segment = strings.ReplaceAll(segment, "\\", "_")
	if segment == "" || segment == "." || segment == ".." {
		return "_"
	}
	return segment
}

// PutUpload archives a document body and returns its object name.
func (c *Client) PutUpload(ctx context.Context, doc models.Document) (string, error) {
	objectName := ObjectName(doc.Owner, doc.ID, doc.FileName)
	reader := strings.NewReader(doc.Content)

	_, err := c.minioClient.PutObject(ctx, c.bucket, objectName, reader, int64(len(doc.Content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"document-id": strconv.FormatInt(doc.ID, 10),
			"owner":       doc.Owner,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put upload: %w", err)
	}
	return objectName, nil
}

// GetUpload reads an archived document body.
func (c *Client) GetUpload(ctx context.Context, owner string, id int64, fileName string) (string, error) {
	object, err := c.minioClient.GetObject(ctx, c.bucket, ObjectName(owner, id, fileName), minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get upload: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return string(data), nil
}

// ListUploads returns the object names archived for an owner.
func (c *Client) ListUploads(ctx context.Context, owner string) ([]string, error) {
	prefix := path.Join(uploadsPrefix, sanitize(owner)) + "/"
	var names []string

	objectCh := c.minioClient.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		names = append(names, object.Key)
	}

	return names, nil
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
