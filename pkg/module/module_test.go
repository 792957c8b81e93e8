package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/syllascan/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for invalid prefix")
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestServePrefixStripping(t *testing.T) {
	mux := http.NewServeMux()

	var receivedPath string
	mux.HandleFunc("GET /history/{id}/source", func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		w.Write([]byte(r.PathValue("id")))
	})
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
	})

	m := module.New("/api", mux)

	t.Run("nested path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/history/42/source", nil))

		if receivedPath != "/history/42/source" {
			t.Errorf("inner path: got %s, want /history/42/source", receivedPath)
		}
		if rec.Body.String() != "42" {
			t.Errorf("path value: got %q, want 42", rec.Body.String())
		}
	})

	t.Run("bare prefix maps to root", func(t *testing.T) {
		m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))
		if receivedPath != "/" {
			t.Errorf("inner path: got %s, want /", receivedPath)
		}
	})
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	m := module.New("/api", mux)
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/ping", nil))

	if rec.Header().Get("X-Module") != "api" {
		t.Error("module middleware not applied")
	}
}

func TestRouter(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /settings/usage", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("usage"))
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name string
		path string
		code int
		body string
	}{
		{"module route", "/api/settings/usage", http.StatusOK, "usage"},
		{"trailing slash trimmed", "/api/settings/usage/", http.StatusOK, "usage"},
		{"native route", "/healthz", http.StatusOK, "ok"},
		{"unknown", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}

	t.Run("duplicate mount panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for duplicate prefix")
			}
		}()
		router.Mount(module.New("/api", http.NewServeMux()))
	})
}
