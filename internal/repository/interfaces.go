package repository

import (
	"context"
)

// ImageRepository defines the data-access operations for submitted images.
type ImageRepository interface {
	// FetchImageBytes retrieves an image's raw bytes from a URL.
	FetchImageBytes(ctx context.Context, imageURL string) ([]byte, error)

	// ValidateImageURL checks whether the provided URL is acceptable.
	ValidateImageURL(imageURL string) error
}
