package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return &Client{URL: url, HTTPClient: http.DefaultClient, Logger: zap.NewNop()}
}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature":18.5,"feels_like":17,"city":"Beograd"}`))
	}))
	defer srv.Close()

	w, err := newTestClient(srv.URL).Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Temperature != 18.5 || w.FeelsLike != 17 || w.City != "Beograd" {
		t.Errorf("got %+v", w)
	}
}

func TestCurrentFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"bad json", http.StatusOK, `not json`},
		{"missing city", http.StatusOK, `{"temperature":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Current(context.Background())
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}
