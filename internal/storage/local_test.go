package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAll(t *testing.T, obj *Object) []byte {
	t.Helper()
	defer obj.Body.Close()
	b, err := io.ReadAll(obj.Body)
	if err != nil {
		t.Fatalf("read object: %v", err)
	}
	return b
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewLocalStore(dir); err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestLocalStoreSaveOpen(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 0xff}
	if err := s.Save(ctx, "a.mp4", bytes.NewReader(payload)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ok, err := s.Exists(ctx, "a.mp4")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	obj, err := s.Open(ctx, "a.mp4")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if obj.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", obj.Size, len(payload))
	}
	if obj.ContentType != "video/mp4" {
		t.Errorf("ContentType = %q", obj.ContentType)
	}
	if got := readAll(t, obj); !bytes.Equal(got, payload) {
		t.Errorf("content = %v, want %v", got, payload)
	}
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := NewLocalStore(t.TempDir())

	_ = s.Save(ctx, "same.mp4", strings.NewReader("first upload, longer body"))
	if err := s.Save(ctx, "same.mp4", strings.NewReader("second")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	obj, err := s.Open(ctx, "same.mp4")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := string(readAll(t, obj)); got != "second" {
		t.Errorf("content = %q, want second upload to replace the first", got)
	}
}

func TestLocalStoreMissingAndInvalid(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewLocalStore(filepath.Join(dir, "uploads"))
	_ = os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644)

	for _, name := range []string{"missing.mp4", "..", ".", "", "../secret.txt", `..\secret.txt`} {
		ok, err := s.Exists(ctx, name)
		if err != nil || ok {
			t.Errorf("Exists(%q) = %v, %v; want false, nil", name, ok, err)
		}
	}

	if _, err := s.Open(ctx, "missing.mp4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open missing err = %v, want ErrNotFound", err)
	}
	if _, err := s.Open(ctx, "../secret.txt"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Open traversal err = %v, want ErrInvalidName", err)
	}
	if err := s.Save(ctx, "../escape.mp4", strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save traversal err = %v, want ErrInvalidName", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"clip.mp4":  "video/mp4",
		"noext":     "application/octet-stream",
		"weird.zzz": "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
