package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "github.com/fsco101/Bignay-Backend/internal/errors"
)

func encodeTestPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeDataURL(t *testing.T) {
	raw := encodeTestPNG(t, 4, 4, color.RGBA{200, 100, 50, 255})
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodeDataURL(dataURL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Error("Decoded payload does not match original bytes")
	}
}

func TestDecodeDataURL_MissingComma(t *testing.T) {
	_, err := DecodeDataURL("data:image/png;base64")
	if err == nil {
		t.Fatal("Expected error for data URL without comma separator")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeMalformedInput) {
		t.Errorf("Expected malformed_input error type, got %v", err)
	}
	if apperrors.GetStatusCode(err) != 400 {
		t.Errorf("Expected status code 400, got %d", apperrors.GetStatusCode(err))
	}
}

func TestDecodeDataURL_BadBase64(t *testing.T) {
	_, err := DecodeDataURL("data:image/png;base64,!!!not-base64!!!")
	if err == nil {
		t.Fatal("Expected error for invalid base64 payload")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeMalformedInput) {
		t.Errorf("Expected malformed_input error type, got %v", err)
	}
}

func TestDecodeImageBytes(t *testing.T) {
	raw := encodeTestPNG(t, 8, 6, color.RGBA{10, 20, 30, 255})

	grid, err := DecodeImageBytes(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if grid.W != 8 || grid.H != 6 {
		t.Errorf("Expected 8x6 grid, got %dx%d", grid.W, grid.H)
	}

	b, g, r := grid.At(3, 2)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("Expected BGR (30,20,10), got (%d,%d,%d)", b, g, r)
	}
}

func TestDecodeImageBytes_Corrupt(t *testing.T) {
	_, err := DecodeImageBytes([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Expected error for corrupt image data")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected decode error type, got %v", err)
	}
	if apperrors.GetStatusCode(err) != 400 {
		t.Errorf("Expected status code 400, got %d", apperrors.GetStatusCode(err))
	}
}

func TestSHA256Hex(t *testing.T) {
	got := SHA256Hex([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if SHA256Hex([]byte("abc")) != SHA256Hex([]byte("abc")) {
		t.Error("Expected deterministic digest for identical input")
	}
	if SHA256Hex([]byte("abc")) == SHA256Hex([]byte("abd")) {
		t.Error("Expected different digests for different input")
	}
}
