package s3

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/databacker/devdb/pkg/storage/credentials"
)

type S3 struct{}

func New() *S3 {
	return &S3{}
}

func (s *S3) Pull(creds credentials.Creds, u url.URL, target string) (int64, error) {
	bucket, key := split(u)
	sess, err := newSession(creds)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("failed to create target file %q: %v", target, err)
	}
	defer f.Close()

	downloader := s3manager.NewDownloader(sess)
	n, err := downloader.Download(f, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to download s3://%s/%s: %v", bucket, key, err)
	}
	return n, nil
}

func (s *S3) Push(creds credentials.Creds, u url.URL, source string) (int64, error) {
	bucket, key := split(u)
	sess, err := newSession(creds)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(source)
	if err != nil {
		return 0, fmt.Errorf("failed to read input file %q: %v", source, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	uploader := s3manager.NewUploader(sess)
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload s3://%s/%s: %v", bucket, key, err)
	}
	return info.Size(), nil
}

func newSession(creds credentials.Creds) (*session.Session, error) {
	opts := session.Options{}
	if creds.AWSEndpoint != "" {
		opts.Config = aws.Config{
			Endpoint:         aws.String(creds.AWSEndpoint),
			S3ForcePathStyle: aws.Bool(true),
		}
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}
	return sess, nil
}

func split(u url.URL) (bucket, key string) {
	return u.Hostname(), strings.TrimPrefix(u.Path, "/")
}
