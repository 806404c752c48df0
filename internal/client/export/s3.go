package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docspace/internal/filex"
	"github.com/google/uuid"
)

var ErrNoBucket = errors.New("s3 bucket is not configured")

var loadDefaultAWSConfig = config.LoadDefaultConfig

// PutObjectAPI is the part of *s3.Client the sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // empty means AWS; set for MinIO and friends
	AccessKey string
	SecretKey string
}

// S3Sink uploads exports as text objects under exports/YYYY/MM/DD/.
type S3Sink struct {
	api    PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewS3SinkWithAPI(api PutObjectAPI, bucket string) *S3Sink {
	return &S3Sink{api: api, bucket: bucket, now: time.Now}
}

// NewS3Sink builds an S3 client from opts. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	if opts.Bucket == "" {
		return nil, ErrNoBucket
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3SinkWithAPI(client, opts.Bucket), nil
}

func (s *S3Sink) key(name string) string {
	d := s.now().UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filex.SafeName(name, "document.txt"))
}

func (s *S3Sink) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := s.key(name)

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
