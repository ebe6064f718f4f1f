package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Settings describes an S3-compatible endpoint.
type S3Settings struct {
	URL    string
	Region string
	Key    string
	Secret string
	Bucket string
}

// Object is one stored object as listed.
type Object struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// S3Store uploads, lists and deletes objects in a single bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	url    string
}

// NewS3Store creates a path-style client for any S3-compatible endpoint.
func NewS3Store(ctx context.Context, s S3Settings) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.Key, s.Secret, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.URL != "" {
			o.BaseEndpoint = aws.String(s.URL)
		}
		o.UsePathStyle = true
	})
	return &S3Store{client: client, bucket: s.Bucket, url: strings.TrimRight(s.URL, "/")}, nil
}

// Upload stores data under key and returns its public link.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.url, s.bucket, key), nil
}

// List returns the objects under prefix, newest first.
func (s *S3Store) List(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			o := Object{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			out = append(out, o)
		}
	}
	SortNewestFirst(out)
	return out, nil
}

// Delete removes one object.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// SortNewestFirst orders objects by modification time, newest first.
func SortNewestFirst(objs []Object) {
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].LastModified.After(objs[j].LastModified)
	})
}

// Expired returns the objects beyond the newest keep, given a newest-first list.
func Expired(objs []Object, keep int) []Object {
	if keep < 0 {
		keep = 0
	}
	if len(objs) <= keep {
		return nil
	}
	return objs[keep:]
}
