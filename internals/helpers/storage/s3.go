// Package storage handles profile image files on S3, served through CloudFront.
package storage

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"medstaff_backend/internals/configs"
)

var client *s3.S3

// Init builds the S3 client once at startup. Credentials come from the
// default AWS chain (env vars / instance profile).
func Init() {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(configs.AWSRegion),
	})
	if err != nil {
		log.Printf("[ERROR] S3 session: %v", err)
		return
	}
	client = s3.New(sess)
}

func Upload(key, contentType string, body []byte) (string, error) {
	if client == nil || configs.AWSBucket == "" {
		return "", fmt.Errorf("storage not configured")
	}
	_, err := client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(configs.AWSBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return PublicURL(key), nil
}

func Delete(key string) error {
	if client == nil || configs.AWSBucket == "" {
		return fmt.Errorf("storage not configured")
	}
	_, err := client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(configs.AWSBucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicURL prefers the CloudFront distribution when configured.
func PublicURL(key string) string {
	if configs.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(configs.CloudFrontURL, "/"), url.PathEscape(key))
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", configs.AWSBucket, configs.AWSRegion, url.PathEscape(key))
}

// KeyFromURL reverses PublicURL so a stored image_url can be deleted.
func KeyFromURL(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return ""
	}
	return key
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}

func GenerateUniqueKey(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
