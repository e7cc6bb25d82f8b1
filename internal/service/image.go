package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImageService checks that recipe image URLs point at reachable images.
type ImageService struct {
	client *resty.Client
}

// NewImageService creates a new ImageService instance
func NewImageService(timeout time.Duration) *ImageService {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))
	return &ImageService{client: client}
}

// ValidateImageURL accepts only http(s) URLs answering a HEAD request with
// a 2xx status and an image content type.
func (s *ImageService) ValidateImageURL(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidImageURL, rawURL)
	}

	resp, err := s.client.R().SetContext(ctx).Head(u.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: status %d", ErrInvalidImageURL, resp.StatusCode())
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(strings.ToLower(ct), "image/") {
		return fmt.Errorf("%w: content type %q", ErrInvalidImageURL, ct)
	}
	return nil
}
