package state

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/shopforge/shopctl/internal/domain/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSession() *session.Session {
	return &session.Session{
		Token: "tok-abc123",
		User: session.User{
			ID:       "u-1",
			Email:    "admin@example.com",
			FullName: "Ada Admin",
			Role:     session.RoleAdmin,
			Status:   "active",
		},
	}
}

// ---------------------------------------------------------------------------
// Load tests
// ---------------------------------------------------------------------------

func TestLoad_MissingFileReturnsNil(t *testing.T) {
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	if got := s.Load(); got != nil {
		t.Errorf("expected nil session for missing file, got %+v", got)
	}
}

func TestLoad_MalformedFileReturnsNil(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage bytes", "not json at all {{{"},
		{"empty file", ""},
		{"json array instead of object", `["token"]`},
		{"truncated json", `{"token": "tok`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			s := NewFileSessionStore(path, testLogger())
			if got := s.Load(); got != nil {
				t.Errorf("expected nil session for malformed content, got %+v", got)
			}
		})
	}
}

func TestLoad_TokenlessRecordReturnsNil(t *testing.T) {
	// A cached user object without a token must not count as a session.
	path := filepath.Join(t.TempDir(), "session.json")
	content := `{"token": "", "user": {"id": "u-1", "role": "admin"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := NewFileSessionStore(path, testLogger())
	if got := s.Load(); got != nil {
		t.Errorf("expected nil session for tokenless record, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Save / round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())

	want := testSession()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load()
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}
	if got.Token != want.Token {
		t.Errorf("Token = %q, want %q", got.Token, want.Token)
	}
	if got.User != want.User {
		t.Errorf("User = %+v, want %+v", got.User, want.User)
	}
}

func TestSave_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	s := NewFileSessionStore(path, testLogger())
	if err := s.Save(testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists() {
		t.Error("session file should exist after Save")
	}
}

func TestSave_Permissions0600(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits not supported on windows")
	}
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	if err := s.Save(testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %04o, want 0600", perm)
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSessionStore(filepath.Join(dir, "session.json"), testLogger())
	if err := s.Save(testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

// ---------------------------------------------------------------------------
// Clear tests
// ---------------------------------------------------------------------------

func TestClear_RemovesSession(t *testing.T) {
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	if err := s.Save(testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.Load(); got != nil {
		t.Errorf("expected nil session after Clear, got %+v", got)
	}
}

func TestClear_EmptyStoreIsNoop(t *testing.T) {
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty store should succeed, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestSaveLoad_ConcurrentAccess(t *testing.T) {
	s := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := s.Save(testSession()); err != nil {
					t.Errorf("Save: %v", err)
					return
				}
				if got := s.Load(); got != nil && got.Token != "tok-abc123" {
					t.Errorf("unexpected token %q", got.Token)
					return
				}
			}
		}()
	}
	wg.Wait()
}
