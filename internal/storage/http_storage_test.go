package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPImageFetcher_RetryLogic(t *testing.T) {
	tests := []struct {
		name          string
		responses     []int
		expectCalls   int
		expectError   bool
		errorContains string
	}{
		{
			name:        "Success on first attempt",
			responses:   []int{200},
			expectCalls: 1,
		},
		{
			name:        "Success after transient 5xx",
			responses:   []int{500, 200},
			expectCalls: 2,
		},
		{
			name:          "Client error is not retried",
			responses:     []int{404},
			expectCalls:   1,
			expectError:   true,
			errorContains: "client error: status code 404",
		},
		{
			name:          "Client error after retry stops immediately",
			responses:     []int{500, 403},
			expectCalls:   2,
			expectError:   true,
			errorContains: "client error: status code 403",
		},
		{
			name:          "Persistent server errors exhaust attempts",
			responses:     []int{500, 502, 503},
			expectCalls:   3,
			expectError:   true,
			errorContains: "server error: status code 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				status := tt.responses[calls]
				calls++
				if status == http.StatusOK {
					w.Header().Set("Content-Type", "image/png")
					w.Write([]byte("fake image bytes"))
					return
				}
				w.WriteHeader(status)
			}))
			defer server.Close()

			fetcher := NewHTTPImageFetcher(1 << 20)
			data, err := fetcher.FetchImageBytes(context.Background(), server.URL)

			if calls != tt.expectCalls {
				t.Errorf("Expected %d requests, got %d", tt.expectCalls, calls)
			}
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected an error")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %v", tt.errorContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !bytes.Equal(data, []byte("fake image bytes")) {
				t.Error("Fetched bytes do not match served bytes")
			}
		})
	}
}

func TestHTTPImageFetcher_RespectsSizeLimit(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(256)
	data, err := fetcher.FetchImageBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(data) != 256 {
		t.Errorf("Expected body capped at 256 bytes, got %d", len(data))
	}
}

func TestHTTPImageFetcher_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	fetcher := NewHTTPImageFetcher(1 << 20)
	_, err := fetcher.FetchImageBytes(ctx, server.URL)
	if err == nil {
		t.Fatal("Expected an error once the context expires")
	}
}
