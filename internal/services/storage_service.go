// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/utils"
)

// StorageService keeps product files in a private S3 bucket. Resource keys
// are never exposed to buyers directly; download access hands out short-lived
// presigned URLs instead. Without AWS credentials the service runs in a local
// mode that returns raw keys, which keeps development and tests self-contained.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type AssetUpload struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

const maxAssetSize = 200 * 1024 * 1024 // 200MB

var allowedAssetTypes = []string{
	".zip", ".pdf", ".epub", ".mp3", ".wav", ".flac",
	".mp4", ".mov", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".psd",
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// Enabled reports whether uploads land in S3 rather than local mode.
func (s *StorageService) Enabled() bool {
	return s.s3Client != nil
}

// UploadAsset stores a seller's product file and returns the resource key to
// record on the listing.
func (s *StorageService) UploadAsset(sellerID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*AssetUpload, error) {
	if header.Size > maxAssetSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxAssetSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, t := range allowedAssetTypes {
		if ext == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	key, err := s.assetKey(sellerID, ext)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		_, err := s.s3Client.PutObject(&s3.PutObjectInput{
			Bucket:        aws.String(s.config.AWS.S3Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(fileBytes),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(fileBytes))),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}
	}

	return &AssetUpload{
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// DownloadURL turns a stored resource key into a URL a buyer can fetch. In
// local mode the key itself is returned.
func (s *StorageService) DownloadURL(resourceKey string) (string, error) {
	if s.s3Client == nil {
		return resourceKey, nil
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(resourceKey),
	})

	url, err := req.Presign(s.downloadTTL())
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) assetKey(sellerID uuid.UUID, ext string) (string, error) {
	nonce, err := utils.GenerateRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate asset key: %w", err)
	}
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("assets/%s/%s_%s%s", sellerID, timestamp, nonce, ext), nil
}

func (s *StorageService) downloadTTL() time.Duration {
	if s.config.Platform.DownloadURLTTL > 0 {
		return s.config.Platform.DownloadURLTTL
	}
	return 15 * time.Minute
}
