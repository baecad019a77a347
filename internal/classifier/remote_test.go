package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsco101/Bignay-Backend/internal/imaging"
)

func testTensor(size int) *imaging.Tensor {
	return &imaging.Tensor{Size: size, Data: make([]float32, size*size*3)}
}

func TestRemoteClassifier_Availability(t *testing.T) {
	rc := NewRemoteClassifier("", "bignay_fruit", FruitClasses, time.Second)
	if rc.Available() {
		t.Error("Expected unavailable classifier without a base URL")
	}

	rc = NewRemoteClassifier("http://localhost:8501", "bignay_fruit", FruitClasses, time.Second)
	if !rc.Available() {
		t.Error("Expected available classifier with a base URL")
	}
}

func TestRemoteClassifier_Predict(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req struct {
			Instances [][][][]float32 `json:"instances"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Instances) != 1 {
			t.Errorf("Expected 1 instance, got %d", len(req.Instances))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"predictions": [][]float64{{0.05, 0.10, 0.15, 0.60, 0.10}},
		})
	}))
	defer server.Close()

	rc := NewRemoteClassifier(server.URL, "bignay_fruit", FruitClasses, time.Second)
	pred, err := rc.Predict(context.Background(), testTensor(4))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/v1/models/bignay_fruit:predict" {
		t.Errorf("Unexpected request path %s", gotPath)
	}
	if pred.Class != "ripe" {
		t.Errorf("Expected argmax class ripe, got %s", pred.Class)
	}
	if pred.Confidence != 0.60 {
		t.Errorf("Expected confidence 0.60, got %f", pred.Confidence)
	}
}

func TestRemoteClassifier_PredictErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Server error with message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]any{"error": "bad model input"})
			},
		},
		{
			name: "Wrong output width",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"predictions": [][]float64{{0.5, 0.5}},
				})
			},
		},
		{
			name: "Empty predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"predictions": [][]float64{}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			rc := NewRemoteClassifier(server.URL, "bignay_fruit", FruitClasses, time.Second)
			if _, err := rc.Predict(context.Background(), testTensor(4)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRemoteClassifier_PredictUnconfigured(t *testing.T) {
	rc := NewRemoteClassifier("", "bignay_fruit", FruitClasses, time.Second)
	if _, err := rc.Predict(context.Background(), testTensor(4)); err == nil {
		t.Error("Expected an error without a configured model server")
	}
}
