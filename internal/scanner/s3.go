package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const s3Scheme = "s3://"

// S3Options configures access to a bucket holding the notes.
type S3Options struct {
	Region    string
	Profile   string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// S3API is the subset of the S3 client used to list and download notes.
type S3API interface {
	s3.ListObjectsV2APIClient
	manager.DownloadAPIClient
}

// ParseS3URI splits an s3://bucket/prefix root. The returned prefix is empty
// or ends with a slash.
func ParseS3URI(root string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(root, s3Scheme)
	if !found {
		return "", "", false
	}

	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}

	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return bucket, prefix, true
}

type s3Source struct {
	client     S3API
	downloader *manager.Downloader
	bucket     string
	prefix     string
	opts       Options
}

func newS3Source(ctx context.Context, bucket, prefix string, opts Options) (*s3Source, error) {
	client := opts.S3Client
	if client == nil {
		c, err := newS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		client = c
	}

	return &s3Source{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		prefix:     prefix,
		opts:       opts,
	}, nil
}

func newS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.Region))
	}
	if o.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(o.Profile))
	}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(opts *s3.Options) {
		opts.UsePathStyle = o.PathStyle
		if o.Endpoint != "" {
			opts.BaseEndpoint = aws.String(o.Endpoint)
		}
	}), nil
}

func (s *s3Source) uri() string {
	return s3Scheme + s.bucket + "/" + s.prefix
}

func (s *s3Source) Walk(ctx context.Context, visit func(Entry) error) error {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return s.rootError(err)
		}

		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			rel := strings.TrimPrefix(key, s.prefix)
			if rel == "" || strings.HasSuffix(rel, "/") || !s.opts.keepKey(rel) {
				continue
			}

			entry := NewEntry(s3Scheme+s.bucket+"/"+key, rel, aws.ToTime(object.LastModified), s.reader(key))
			if err := visit(entry); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *s3Source) reader(key string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		buf := manager.NewWriteAtBuffer(nil)
		_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func (s *s3Source) rootError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %s", ErrRootNotFound, s.uri())
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrRootUnreadable, s.uri(), err)
}
