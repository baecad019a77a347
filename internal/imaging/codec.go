package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	apperrors "github.com/fsco101/Bignay-Backend/internal/errors"
)

// DecodeDataURL extracts the raw bytes from a base64 data URL
// ("data:image/...;base64,<payload>"). Everything before the first comma is
// treated as the header and discarded.
func DecodeDataURL(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, apperrors.NewMalformedInputError("invalid data URL: missing comma separator", nil)
	}
	payload := dataURL[idx+1:]
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.NewMalformedInputError("invalid data URL: bad base64 payload", err)
	}
	return raw, nil
}

// DecodeImageBytes decodes JPEG/PNG/GIF bytes into a BGR grid.
func DecodeImageBytes(raw []byte) (*Grid, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.NewDecodeError("could not decode image", err)
	}
	return FromImage(img), nil
}

// SHA256Hex returns the hex SHA-256 digest of data, used verbatim as a
// dedup/log key.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
