package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestUploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload/image" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-up" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "hero.png" {
			t.Errorf("filename = %q, want hero.png", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "png-bytes" {
			t.Errorf("content = %q, want png-bytes", content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://cdn.example.com/banners/hero.png"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok-up")
	url, err := client.UploadImage(context.Background(), "hero.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/banners/hero.png" {
		t.Errorf("url = %q", url)
	}
}

func TestCreateBannerSendsCanonicalTimestamps(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"b-1","title":"Summer Sale"}`))
	}))
	defer server.Close()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC)

	client := newTestClient(server.URL, "tok")
	banner, err := client.CreateBanner(context.Background(), BannerInput{
		Title:    "Summer Sale",
		ImageURL: "https://cdn.example.com/x.png",
		Position: "home_top",
		StartAt:  start,
		EndAt:    end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if banner.ID != "b-1" {
		t.Errorf("ID = %q, want b-1", banner.ID)
	}
	if got := raw["startAt"]; got != "2026-06-01T00:00:00Z" {
		t.Errorf("startAt = %v, want RFC3339 UTC", got)
	}
	if got := raw["endAt"]; got != "2026-06-30T23:59:00Z" {
		t.Errorf("endAt = %v, want RFC3339 UTC", got)
	}
}

func TestBannerDateOrderingIsServerSide(t *testing.T) {
	// startAt after endAt is NOT rejected client-side; the server's message
	// comes back verbatim.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"startAt must be before endAt"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	_, err := client.CreateBanner(context.Background(), BannerInput{
		Title:    "Backwards",
		ImageURL: "https://cdn.example.com/x.png",
		Position: "home_top",
		StartAt:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatal("expected server rejection to propagate")
	}
	if got := UserMessage(err); got != "startAt must be before endAt" {
		t.Errorf("UserMessage = %q, want server message verbatim", got)
	}
}

func TestDeleteBanner(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok")
	if err := client.DeleteBanner(context.Background(), "b-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/admin/banners/b-2" {
		t.Errorf("got %s %s, want DELETE /api/admin/banners/b-2", gotMethod, gotPath)
	}
}
