package calendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/JaimeStill/syllascan/internal/calendar"
)

func calendarServer(t *testing.T, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var auths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))

		if r.Method != http.MethodPost || r.URL.Path != "/calendars/primary/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": status, "message": "Invalid Credentials"},
			})
			return
		}

		var evt gcal.Event
		json.NewDecoder(r.Body).Decode(&evt)
		json.NewEncoder(w).Encode(map[string]any{"id": "evt-123", "summary": evt.Summary})
	}))
	t.Cleanup(srv.Close)
	return srv, &auths
}

func TestGoogleInserter(t *testing.T) {
	srv, auths := calendarServer(t, http.StatusOK)
	ins := calendar.NewGoogleInserter("primary", srv.URL+"/")

	id, err := ins.Insert(context.Background(), "token-abc", &gcal.Event{Summary: "Quiz"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != "evt-123" {
		t.Errorf("id = %q", id)
	}
	if len(*auths) != 1 || (*auths)[0] != "Bearer token-abc" {
		t.Errorf("authorization = %v", *auths)
	}
}

func TestGoogleInserterUnauthorized(t *testing.T) {
	srv, _ := calendarServer(t, http.StatusUnauthorized)
	ins := calendar.NewGoogleInserter("primary", srv.URL+"/")

	_, err := ins.Insert(context.Background(), "expired", &gcal.Event{Summary: "Quiz"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !calendar.IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false", err)
	}
}

func TestIsAuthError(t *testing.T) {
	if calendar.IsAuthError(errors.New("connection reset")) {
		t.Error("plain error should not be an auth error")
	}
	if !calendar.IsAuthError(errors.New(`oauth2: "invalid_grant" "Token has been expired or revoked."`)) {
		t.Error("invalid_grant should be an auth error")
	}
}

func TestOAuthRefresher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" || r.Form.Get("refresh_token") != "refresh-1" {
			t.Errorf("form = %v", r.Form)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	ref := calendar.NewRefresher("client", "secret", oauth2.Endpoint{TokenURL: srv.URL})
	if ref == nil {
		t.Fatal("refresher should be configured")
	}

	token, err := ref.Refresh(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("token = %q", token)
	}
}

func TestNewRefresherRequiresClient(t *testing.T) {
	if calendar.NewRefresher("", "secret", oauth2.Endpoint{}) != nil {
		t.Error("missing client id should disable refresh")
	}
	if calendar.NewRefresher("client", "", oauth2.Endpoint{}) != nil {
		t.Error("missing client secret should disable refresh")
	}
}
