package publish

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const defaultAwsRegion = "us-east-1"

// S3 uploads files to a bucket, keyed as Prefix/<base name>.
type S3 struct {
	// these should be set before running Init(), or left to defaults
	Bucket string
	Prefix string
	Region string

	uploader *s3manager.Uploader
}

// Init sets up the aws session and uploader. Credentials come from the
// usual environment and shared config sources.
func (s *S3) Init() error {
	if s.Region == "" {
		s.Region = defaultAwsRegion
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(s.Region),
	})
	if err != nil {
		return fmt.Errorf("publish: set up aws session: %w", err)
	}
	s.uploader = s3manager.NewUploader(sess)
	return nil
}

func (s *S3) String() string {
	return "s3://" + path.Join(s.Bucket, s.Prefix)
}

// Key returns the object key a local file is uploaded under.
func (s *S3) Key(file string) string {
	return path.Join(s.Prefix, filepath.Base(file))
}

// Publish uploads file to the bucket.
func (s *S3) Publish(file string) error {
	if s.uploader == nil {
		return fmt.Errorf("publish: s3 publisher for %s not initialised", s.Bucket)
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	in := &s3manager.UploadInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key(file)),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(file)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	_, err = s.uploader.Upload(in)
	return err
}
