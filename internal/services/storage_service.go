// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitchworks/apparel-backend/internal/config"
)

// Customer reference images for upload-mode lines.
const (
	referenceFolder  = "references"
	maxReferenceSize = 10 * 1024 * 1024 // 10MB
)

var allowedReferenceTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".pdf"}

type StorageService struct {
	s3Client *s3.S3
	bucket   string
	ttl      time.Duration
	clock    func() time.Time
}

type UploadResult struct {
	Ref      string `json:"ref"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	svc := &StorageService{
		bucket: cfg.S3Bucket,
		ttl:    cfg.PresignTTL(),
		clock:  time.Now,
	}

	if cfg.AccessKeyID == "" {
		// Local development keeps refs unsigned
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// UploadReference stores a customer reference image and returns the opaque
// ref that goes into a line's upload_refs.
func (s *StorageService) UploadReference(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > maxReferenceSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxReferenceSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isAllowedReferenceType(ext) {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxReferenceSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > maxReferenceSize {
		return nil, fmt.Errorf("file exceeds maximum allowed size %d bytes", maxReferenceSize)
	}

	contentType := http.DetectContentType(fileBytes)
	if !isReferenceContent(contentType) {
		return nil, fmt.Errorf("invalid reference file")
	}

	key := s.generateKey(ext)

	if s.s3Client != nil {
		_, err := s.s3Client.PutObject(&s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(fileBytes),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(fileBytes))),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}
	} else {
		logrus.WithField("ref", key).Debug("S3 not configured, reference not persisted")
	}

	return &UploadResult{
		Ref:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// Presign returns a time-limited GET URL for ref. Without S3 the ref is
// returned unchanged.
func (s *StorageService) Presign(ref string) (string, error) {
	if s.s3Client == nil {
		return ref, nil
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})

	url, err := req.Presign(s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) generateKey(ext string) string {
	timestamp := s.clock().UTC().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", referenceFolder, timestamp, uuid.New().String(), ext)
}

func isAllowedReferenceType(ext string) bool {
	for _, allowed := range allowedReferenceTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

func isReferenceContent(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}
