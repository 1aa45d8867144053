package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/streamnest/streamnest/backend/internal/logger"
)

// S3Store implements Store against an S3-compatible bucket. It is selected
// through the storage backend config; the filesystem store is the default.
type S3Store struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
	logger   logger.Logger
}

// NewS3Store creates an S3-backed blob store.
func NewS3Store(cfg *S3Config, prefix string, log logger.Logger) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.ForcePathStyle),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %v", err)
	}

	return &S3Store{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		prefix:   prefix,
		logger:   log,
	}, nil
}

func (s *S3Store) key(filename string) string {
	if s.prefix == "" {
		return filename
	}
	return s.prefix + "/" + filename
}

// Save streams the blob into the bucket and returns its location.
func (s *S3Store) Save(ctx context.Context, reader io.Reader, filename string) (string, error) {
	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob to S3: %v", err)
	}
	return result.Location, nil
}

// Open returns a reader over the full blob.
func (s *S3Store) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		return nil, mapS3Error(err)
	}
	return out.Body, nil
}

// ReadRange issues a ranged GetObject for length bytes starting at start.
func (s *S3Store) ReadRange(ctx context.Context, filename string, start, length int64) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, start+length-1)),
	})
	if err != nil {
		return nil, mapS3Error(err)
	}
	return out.Body, nil
}

// Stat returns blob size and modification time via HeadObject.
func (s *S3Store) Stat(ctx context.Context, filename string) (FileInfo, error) {
	out, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		return FileInfo{}, mapS3Error(err)
	}
	info := FileInfo{Size: aws.Int64Value(out.ContentLength)}
	if out.LastModified != nil {
		info.ModTime = *out.LastModified
	}
	return info, nil
}

// Delete removes the blob from the bucket.
func (s *S3Store) Delete(ctx context.Context, filename string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob from S3: %v", err)
	}
	return nil
}

func mapS3Error(err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return ErrNotFound
		}
	}
	return err
}
