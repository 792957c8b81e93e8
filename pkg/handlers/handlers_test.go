package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/syllascan/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]any{"count": 2})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %s", ct)
	}

	var parsed map[string]float64
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed["count"] != 2 {
		t.Errorf("count = %v, want 2", parsed["count"])
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		status int
		err    error
	}{
		{"bad request", http.StatusBadRequest, errors.New("no files uploaded")},
		{"server error", http.StatusInternalServerError, errors.New("database unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondError(rec, logger, tt.status, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.err.Error() {
				t.Errorf("error: got %q, want %q", body["error"], tt.err.Error())
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		APIKey string `json:"apiKey"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"apiKey":"sk-test"}`))
		var p payload
		if err := handlers.DecodeJSON(httptest.NewRecorder(), req, &p); err != nil {
			t.Fatalf("DecodeJSON: %v", err)
		}
		if p.APIKey != "sk-test" {
			t.Errorf("apiKey = %q", p.APIKey)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"apiKey":`))
		var p payload
		err := handlers.DecodeJSON(httptest.NewRecorder(), req, &p)
		if !errors.Is(err, handlers.ErrInvalidBody) {
			t.Errorf("error = %v, want ErrInvalidBody", err)
		}
	})
}
