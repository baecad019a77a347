package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// RemoteClassifier calls a TensorFlow-Serving style model server:
// POST {base}/v1/models/{name}:predict with a single-instance batch, reading
// back one probability vector per instance.
type RemoteClassifier struct {
	baseURL   string
	modelName string
	classes   []string
	client    *http.Client
}

// NewRemoteClassifier creates a model-server client. An empty baseURL yields
// an unavailable classifier, which callers treat as "no model configured".
func NewRemoteClassifier(baseURL, modelName string, classes []string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		baseURL:   baseURL,
		modelName: modelName,
		classes:   classes,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// Available reports whether a model server is configured.
func (rc *RemoteClassifier) Available() bool { return rc.baseURL != "" }

// Classes returns the label set in output-index order.
func (rc *RemoteClassifier) Classes() []string { return append([]string(nil), rc.classes...) }

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error,omitempty"`
}

// Predict sends one tensor to the model server and returns the argmax class
// with its probability.
func (rc *RemoteClassifier) Predict(ctx context.Context, t *imaging.Tensor) (models.Prediction, error) {
	if !rc.Available() {
		return models.Prediction{}, fmt.Errorf("no model server configured")
	}

	body, err := json.Marshal(predictRequest{Instances: [][][][]float32{tensorToInstance(t)}})
	if err != nil {
		return models.Prediction{}, fmt.Errorf("encode predict request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:predict", rc.baseURL, rc.modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.Prediction{}, fmt.Errorf("decode model server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return models.Prediction{}, fmt.Errorf("model server error: %s", decoded.Error)
		}
		return models.Prediction{}, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}
	if len(decoded.Predictions) == 0 || len(decoded.Predictions[0]) != len(rc.classes) {
		return models.Prediction{}, fmt.Errorf("model server returned %d outputs, want %d",
			len(decoded.Predictions), len(rc.classes))
	}

	probs := decoded.Predictions[0]
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return models.Prediction{Class: rc.classes[best], Confidence: probs[best]}, nil
}

// tensorToInstance reshapes the flat tensor into the HxWxC nesting the model
// server expects.
func tensorToInstance(t *imaging.Tensor) [][][]float32 {
	out := make([][][]float32, t.Size)
	for y := 0; y < t.Size; y++ {
		row := make([][]float32, t.Size)
		for x := 0; x < t.Size; x++ {
			i := (y*t.Size + x) * 3
			row[x] = t.Data[i : i+3 : i+3]
		}
		out[y] = row
	}
	return out
}
