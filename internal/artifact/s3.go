package artifact

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Writer persists artifacts to object storage under:
//
//	s3://<bucket>/<prefix>/shrubbery/<key>.txt
type S3Writer struct {
	bucket   string
	prefix   string
	uploader *manager.Uploader
}

// NewS3Writer creates an S3Writer. Region and credentials come from the
// environment (AWS_REGION, AWS_PROFILE, AWS_ACCESS_KEY_ID/SECRET etc.).
// The prefix may be empty.
func NewS3Writer(ctx context.Context, bucket, prefix string) (*S3Writer, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket required")
	}
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Writer{
		bucket:   bucket,
		prefix:   prefix,
		uploader: manager.NewUploader(client),
	}, nil
}

func (w *S3Writer) Write(ctx context.Context, key, content string) error {
	if key == "" {
		return fmt.Errorf("artifact key required")
	}
	objectKey := path.Join(w.prefix, "shrubbery", key+".txt")
	_, err := w.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(w.bucket),
		Key:                  aws.String(objectKey),
		Body:                 strings.NewReader(content),
		ContentType:          aws.String("text/plain; charset=utf-8"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}
