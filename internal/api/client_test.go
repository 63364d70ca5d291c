package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(serverURL, token string, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(serverURL),
		WithTokenFunc(func() string { return token }),
	}
	return NewClient(append(base, opts...)...)
}

// ---------------------------------------------------------------------------
// Bearer credential handling
// ---------------------------------------------------------------------------

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Collection[Seller]{})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok-xyz")
	if _, err := client.ListSellers(context.Background(), ListParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-xyz")
	}
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Collection[Seller]{})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if _, err := client.ListSellers(context.Background(), ListParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadAuth {
		t.Error("Authorization header attached despite no token")
	}
}

func TestRequestIDAttached(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Collection[Shop]{})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	if _, err := client.ListShops(context.Background(), ListParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-ID header on outgoing request")
	}
}

// ---------------------------------------------------------------------------
// Session invalidation on 403
// ---------------------------------------------------------------------------

func TestForbiddenWithTokenFiresObserverOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer server.Close()

	var calls atomic.Int64
	client := newTestClient(server.URL, "tok-dead", WithSessionInvalidHandler(func(reason string) {
		calls.Add(1)
		if reason == "" {
			t.Error("expected a non-empty reason")
		}
	}))

	_, err := client.ListSellers(context.Background(), ListParams{})
	if err == nil {
		t.Fatal("expected error on 403, got nil")
	}

	// The original error still reaches the caller.
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", apiErr.Status)
	}
	if apiErr.Message != "token expired" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "token expired")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Error("expected errors.Is(err, ErrForbidden)")
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("observer fired %d times, want exactly 1", got)
	}
}

func TestForbiddenWithoutTokenDoesNotFireObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"admins only"}`, http.StatusForbidden)
	}))
	defer server.Close()

	var calls atomic.Int64
	client := newTestClient(server.URL, "", WithSessionInvalidHandler(func(string) {
		calls.Add(1)
	}))

	_, err := client.ListSellers(context.Background(), ListParams{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("observer fired %d times, want 0: never-logged-in is not a session event", got)
	}
}

func TestUnauthorizedDoesNotFireObserver(t *testing.T) {
	// The backend signals a dead session with 403, not 401. A 401 is
	// propagated as a plain error without touching the session.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	var calls atomic.Int64
	client := newTestClient(server.URL, "tok", WithSessionInvalidHandler(func(string) {
		calls.Add(1)
	}))

	_, err := client.ListSellers(context.Background(), ListParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("observer fired %d times on 401, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

func TestTransportFailure(t *testing.T) {
	// Point at a closed server so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, "tok", WithTimeout(2*time.Second))
	_, err := client.ListSellers(context.Background(), ListParams{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected errors.Is(err, ErrTransport), got %T: %v", err, err)
	}
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Errorf("expected *TransportError, got %T", err)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantUser string
	}{
		{"message field", 400, `{"message":"title is required"}`, "title is required", "title is required"},
		{"error field fallback", 400, `{"error":"bad position"}`, "bad position", "bad position"},
		{"no payload", 500, ``, "", "The server hit an internal error. Try again later."},
		{"non-json payload", 502, `<html>bad gateway</html>`, "", "The server hit an internal error. Try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, "")
			_, err := client.ListReports(context.Background(), ListParams{})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if got := UserMessage(err); got != tt.wantUser {
				t.Errorf("UserMessage = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such shop"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	_, err := client.GetShop(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected errors.Is(err, ErrNotFound), got %v", err)
	}
}

func TestMalformedSuccessBodyFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": "not-an-array"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	if _, err := client.ListUsers(context.Background(), "", ListParams{}); err == nil {
		t.Fatal("expected decode error for malformed response, got nil")
	}
}

// ---------------------------------------------------------------------------
// Query and payload mapping
// ---------------------------------------------------------------------------

func TestListUsersQueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/users" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Collection[Account]{})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	_, err := client.ListUsers(context.Background(), "abc", ListParams{Page: 2, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"keyword=abc", "page=2", "limit=50"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestRejectRegistrationPayload(t *testing.T) {
	var got rejectRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/seller-registrations/reg-1/reject" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	if err := client.RejectRegistration(context.Background(), "reg-1", "incomplete documents"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RejectReason != "incomplete documents" {
		t.Errorf("rejectReason = %q, want %q", got.RejectReason, "incomplete documents")
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if _, hasAuth := r.Header["Authorization"]; hasAuth {
			t.Error("login must go out unauthenticated")
		}
		var creds loginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds.Email != "admin@example.com" || creds.Password != "hunter2" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-new","user":{"id":"u-1","email":"admin@example.com","role":"admin","status":"active"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	sess, err := client.Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "tok-new" {
		t.Errorf("Token = %q, want %q", sess.Token, "tok-new")
	}
	if sess.User.Role != "admin" {
		t.Errorf("Role = %q, want admin", sess.User.Role)
	}
}

func TestBlockUserHitsBlockEndpoint(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	if err := client.BlockUser(context.Background(), "u-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/admin/users/u-9/block" {
		t.Errorf("got %s %s, want POST /api/admin/users/u-9/block", gotMethod, gotPath)
	}
}

func TestGMVStatisticsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/revenue/gmv-statistics" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("period"); got != "month" {
			t.Errorf("period = %q, want month", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"period":"month","points":[{"period":"2026-08","gmv":1250.5,"orders":42}],"total":1250.5}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	stats, err := client.GetGMVStatistics(context.Background(), "month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.Points) != 1 || stats.Points[0].GMV != 1250.5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
