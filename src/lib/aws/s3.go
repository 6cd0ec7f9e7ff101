package aws

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const passURLExpiry = time.Hour

var s3Client *s3.Client

func GetS3Client(ctx context.Context) (*s3.Client, error) {
	if s3Client != nil {
		return s3Client, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil, err
	}
	s3Client = s3.NewFromConfig(cfg)
	return s3Client, nil
}

// PassObjectKey is the object key of a booking's stay pass.
func PassObjectKey(bookingNumber string) string {
	return fmt.Sprintf("passes/%s.jpeg", bookingNumber)
}

// NewPassPutObjectInput describes the upload of a pass image.
func NewPassPutObjectInput(bucket, key string, f *os.File) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/jpeg"),
	}
}

// S3UploadPass stores the pass image at f under key and returns a
// short-lived download URL.
func S3UploadPass(ctx context.Context, bucket, key, f string) (*string, error) {
	file, err := os.Open(f)
	if err != nil {
		log.Printf("Could not open file to upload: %s\n", err.Error())
		return nil, err
	}
	defer file.Close()
	client, err := GetS3Client(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := client.PutObject(ctx, NewPassPutObjectInput(bucket, key, file)); err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return nil, err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, bucket)
	pre := s3.NewPresignClient(client)
	r, err := pre.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = passURLExpiry
	})
	if err != nil {
		log.Printf("Could not generate presigned URL for object [%s]: %s\n", key, err.Error())
		return nil, err
	}
	return &r.URL, nil
}
