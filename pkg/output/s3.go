package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config describes an S3 compatible bucket to publish renders to
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses the AWS default for Region
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
}

// Enabled reports whether enough is configured to publish
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// objectPutter is the part of the S3 client used for publishing
type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads encoded renders to a bucket
type S3Publisher struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher with static credentials
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return &S3Publisher{client: s3.New(sess), bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Key returns the object key name is stored under
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.prefix, name)
}

// PublishImage encodes img as PNG and uploads it under name. It returns the
// object key.
func (p *S3Publisher) PublishImage(ctx context.Context, name string, img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(name)
	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return key, nil
}
