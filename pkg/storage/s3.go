package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type s3Storage struct {
	uploader *s3manager.Uploader
	cfg      S3Configs
}

// NewS3Storage connects to any S3 compatible endpoint. Supabase Storage
// exposes one at <project>.supabase.co/storage/v1/s3 and serves public
// objects from <project>.supabase.co/storage/v1/object/public.
func NewS3Storage(cfg S3Configs) (*s3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		uploader: s3manager.NewUploader(sess),
		cfg:      cfg,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(object.Bucket),
		Key:         aws.String(object.FileName),
		Body:        bytes.NewReader(object.Data),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w, bucket %s, key %s", err, object.Bucket, object.FileName)
	}

	return &UploadResponse{
		Url:      PublicURL(s.cfg.PublicEndpoint, object.Bucket, object.FileName),
		FileName: object.FileName,
	}, nil
}

func PublicURL(publicEndpoint, bucket, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(publicEndpoint, "/"), bucket, fileName)
}
