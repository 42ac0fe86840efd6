package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExplicitToken(t *testing.T) {
	s, err := Load("  tok-123  ", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Token() != "tok-123" {
		t.Fatalf("Token() = %q", s.Token())
	}
	if !s.Authenticated() {
		t.Fatal("expected Authenticated")
	}
}

func TestLoadTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("tok-from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Load("", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Token() != "tok-from-file" {
		t.Fatalf("Token() = %q", s.Token())
	}
}

func TestLoadExplicitWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("file-token"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Load("explicit", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Token() != "explicit" {
		t.Fatalf("Token() = %q", s.Token())
	}
}

func TestLoadMissingTokenIsNotAnError(t *testing.T) {
	s, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("expected unauthenticated store")
	}
	var nilStore *Store
	if nilStore.Token() != "" {
		t.Fatal("nil store should return empty token")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("", "/nonexistent/token"); err == nil {
		t.Fatal("expected error for missing token file")
	}
}
