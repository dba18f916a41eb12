package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config configures the bucket backing uploads. PublicBaseURL is the CDN
// or website endpoint the stored key is appended to.
type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

type S3 struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		prefix:        cfg.Prefix,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put stores the object under a fresh uuid key, keeping the original file
// extension so browsers infer the type from the URL.
func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	key := uuid.NewString() + ext
	if s.prefix != "" {
		key = strings.Trim(s.prefix, "/") + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &in.ContentType,
	})
	if err != nil {
		return PutResult{}, fmt.Errorf("put object: %w", err)
	}

	return PutResult{Key: key, URL: s.publicBaseURL + "/" + key}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	return err
}
