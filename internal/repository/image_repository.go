package repository

import (
	"context"
	"net/url"
	"strings"

	"github.com/fsco101/Bignay-Backend/internal/storage"
)

// HTTPImageRepository implements ImageRepository over the HTTP fetcher, with
// an optional blob storage for Azure-hosted uploads.
type HTTPImageRepository struct {
	fetcher storage.ImageFetcher
	blobs   storage.BlobStorage // may be nil
}

// NewHTTPImageRepository creates an image repository. blobs may be nil when
// no Azure account is configured.
func NewHTTPImageRepository(fetcher storage.ImageFetcher, blobs storage.BlobStorage) ImageRepository {
	return &HTTPImageRepository{fetcher: fetcher, blobs: blobs}
}

// FetchImageBytes retrieves the raw bytes behind the URL, preferring blob
// storage for blob.core.windows.net hosts.
func (r *HTTPImageRepository) FetchImageBytes(ctx context.Context, imageURL string) ([]byte, error) {
	if r.blobs != nil {
		if parsed, err := url.Parse(imageURL); err == nil &&
			strings.HasSuffix(parsed.Host, ".blob.core.windows.net") {
			return r.blobs.GetImageBytes(ctx, imageURL)
		}
	}
	return r.fetcher.FetchImageBytes(ctx, imageURL)
}

// ValidateImageURL checks the URL parses and has a host.
func (r *HTTPImageRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrInvalidImageURL
	}
	return nil
}
