package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appConfig "github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/pkg/logger"
)

var (
	ErrInvalidFileType = errors.New("file type is not allowed")
	ErrFileTooLarge    = errors.New("file size exceeds the allowed maximum")
	ErrInvalidFileURL  = errors.New("file URL does not belong to this bucket")
)

// MediaKind separates the two upload families, each with its own
// allow-list and size cap.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"

	MaxImageSize int64 = 10 << 20  // 10 MB
	MaxVideoSize int64 = 500 << 20 // 500 MB
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Browsers label some video containers application/octet-stream; that type
// counts as video so the extension decides the real format.
var videoContentTypes = map[string]bool{
	"video/mp4":                true,
	"video/webm":               true,
	"video/ogg":                true,
	"video/avi":                true,
	"video/mov":                true,
	"video/wmv":                true,
	"video/mkv":                true,
	"video/flv":                true,
	"video/3gp":                true,
	"video/m4v":                true,
	"video/quicktime":          true,
	"application/octet-stream": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".mkv":  true,
	".flv":  true,
	".3gp":  true,
	".m4v":  true,
}

// R2Storage relays media to an S3-compatible object store behind a custom
// endpoint, addressing the bucket path-style.
type R2Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Storage(cfg *appConfig.StorageConfig) *R2Storage {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Kind classifies an upload as video when either its declared content type
// or its extension says so; everything else is treated as an image.
func Kind(filename, contentType string) MediaKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if videoContentTypes[contentType] || videoExtensions[ext] {
		return MediaVideo
	}
	return MediaImage
}

// ValidateUpload accepts a file when its declared content type or its
// extension is on an allow-list, then enforces the kind's size cap.
func ValidateUpload(filename, contentType string, size int64, kind MediaKind) error {
	ext := strings.ToLower(filepath.Ext(filename))

	typeAllowed := imageContentTypes[contentType] || videoContentTypes[contentType]
	extAllowed := imageExtensions[ext] || videoExtensions[ext]
	if !typeAllowed && !extAllowed {
		return ErrInvalidFileType
	}

	maxSize := MaxImageSize
	if kind == MediaVideo {
		maxSize = MaxVideoSize
	}
	if size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// Upload streams the file body to the bucket under a fresh UUID key and
// returns the public URL.
func (s *R2Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	logger.Info("Uploading file to object storage", map[string]interface{}{
		"key":          key,
		"content_type": contentType,
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Failed to upload file to object storage", err, map[string]interface{}{
			"key": key,
		})
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(key), nil
}

// Delete removes a previously uploaded file, deriving the object key from
// the last two segments of the public URL path (folder/filename).
func (s *R2Storage) Delete(ctx context.Context, fileURL string) error {
	key, err := KeyFromURL(fileURL)
	if err != nil {
		return err
	}

	logger.Info("Deleting file from object storage", map[string]interface{}{
		"key": key,
	})

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Failed to delete file from object storage", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL builds the externally served URL for a stored key.
func (s *R2Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// KeyFromURL extracts the "folder/filename" object key from a public URL.
func KeyFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", ErrInvalidFileURL
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", ErrInvalidFileURL
	}

	return strings.Join(segments[len(segments)-2:], "/"), nil
}
