package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/config"
	"github.com/pageza/recipegen/backend/internal/logger"
)

// MaxAvatarBytes caps the size of an uploaded profile picture.
const MaxAvatarBytes = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStore is the subset of blob storage the avatar upload needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	URL(ctx context.Context, key string) (string, error)
}

// S3Store keeps objects in one bucket. A positive urlTTL hands out
// presigned URLs instead of public ones.
type S3Store struct {
	s3     *config.S3Config
	urlTTL time.Duration
}

func NewS3Store(s3Config *config.S3Config, urlTTL time.Duration) *S3Store {
	return &S3Store{s3: s3Config, urlTTL: urlTTL}
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error {
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.s3.BucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	if s.urlTTL > 0 {
		return s.s3.GeneratePresignedURL(ctx, key, s.urlTTL)
	}
	return s.s3.PublicURL(key), nil
}

// AvatarService uploads profile pictures.
type AvatarService struct {
	store ObjectStore
	log   *zap.Logger
}

func NewAvatarService(store ObjectStore, log *zap.Logger) *AvatarService {
	return &AvatarService{store: store, log: logger.OrNop(log)}
}

// UploadAvatar stores the image under avatars/<user>/ and returns its URL.
func (s *AvatarService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: content type %q", ErrUnsupportedAvatar, contentType)
	}
	if size <= 0 || size > MaxAvatarBytes {
		return "", fmt.Errorf("%w: size %d", ErrUnsupportedAvatar, size)
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
	if err := s.store.Put(ctx, key, contentType, size, body); err != nil {
		return "", err
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return "", err
	}
	s.log.Info("avatar uploaded", zap.String("user_id", userID.String()), zap.String("key", key))
	return url, nil
}
