package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsco101/Bignay-Backend/internal/analyzer"
	"github.com/fsco101/Bignay-Backend/internal/classifier"
	"github.com/fsco101/Bignay-Backend/internal/config"
	"github.com/fsco101/Bignay-Backend/internal/gate"
	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/internal/service"
)

type nopImageRepo struct{}

func (nopImageRepo) FetchImageBytes(ctx context.Context, imageURL string) ([]byte, error) {
	return nil, nil
}
func (nopImageRepo) ValidateImageURL(imageURL string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "5000",
		RequestTimeout:     10 * time.Second,
		ImageFetchTimeout:  5 * time.Second,
		MaxRequestBodySize: 10 << 20,
		FruitModelName:     "bignay_fruit",
		LeafModelName:      "bignay_leaf",
		ModelTimeout:       5 * time.Second,
	}
}

func testHandler() http.Handler {
	gin.SetMode(gin.TestMode)
	svc := service.NewScanService(
		nopImageRepo{},
		analyzer.NewSegmenter(),
		analyzer.NewFeatureExtractor(),
		analyzer.NewQualityAssessor(),
		analyzer.NewEnhancer(),
		classifier.NewRemoteClassifier("", "bignay_fruit", classifier.FruitClasses, time.Second),
		classifier.NewRemoteClassifier("", "bignay_leaf", classifier.LeafClasses, time.Second),
		gate.NewSubjectGate(),
	)
	return NewHandler(svc, testConfig())
}

func scanBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	return bytes.NewReader(raw)
}

func purpleCircleDataURL(t *testing.T) string {
	t.Helper()
	grid := imaging.NewGrid(224, 224)
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			dx, dy := x-112, y-112
			if dx*dx+dy*dy <= 56*56 {
				grid.Set(x, y, 60, 0, 120)
			} else {
				grid.Set(x, y, 255, 255, 255)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, grid.ToImage()); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHealthEndpoint(t *testing.T) {
	handler := testHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "available" {
		t.Errorf("Expected status available, got %v", body["status"])
	}
}

func TestPredictEndpoint(t *testing.T) {
	handler := testHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict",
		scanBody(t, ScanAPIRequest{Image: purpleCircleDataURL(t), Subject: "fruit"}))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["is_bignay"] != true {
		t.Errorf("Expected is_bignay true, got %v", body["is_bignay"])
	}
	if body["subject"] != "fruit" {
		t.Errorf("Expected subject fruit, got %v", body["subject"])
	}
	if body["image_sha256"] == "" {
		t.Error("Expected an image hash")
	}
	if _, ok := body["detection"]; !ok {
		t.Error("Expected a detection verdict in the response")
	}
}

func TestPredictEndpoint_MissingImage(t *testing.T) {
	handler := testHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict",
		scanBody(t, ScanAPIRequest{Subject: "fruit"}))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if body.Message == "" {
		t.Error("Expected an error message")
	}
}

func TestPredictEndpoint_MalformedDataURL(t *testing.T) {
	handler := testHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict",
		scanBody(t, ScanAPIRequest{Image: "data:image/png;base64"}))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestPredictEndpoint_CorruptImage(t *testing.T) {
	handler := testHandler()

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("garbage"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict",
		scanBody(t, ScanAPIRequest{Image: payload}))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if !bytes.Contains([]byte(body.Message), []byte("corrupt image data")) {
		t.Errorf("Expected corrupt-image message, got %q", body.Message)
	}
}

func TestPredictEndpoint_InvalidJSON(t *testing.T) {
	handler := testHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}
