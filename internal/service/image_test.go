package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipegen/backend/internal/service"
)

func TestImageService_ValidateImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/photo.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := service.NewImageService(2 * time.Second)

	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"should accept an image", srv.URL + "/photo.jpg", true},
		{"should reject html", srv.URL + "/page", false},
		{"should reject a missing file", srv.URL + "/missing.png", false},
		{"should reject other schemes", "ftp://example.com/a.png", false},
		{"should reject garbage", "not a url", false},
		{"should reject an empty url", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateImageURL(context.Background(), tt.url)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, service.ErrInvalidImageURL)
			}
		})
	}
}
