package compiler

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverModels(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"user.ts",
		"post.ts",
		"admin/audit_log.ts",
		"types.d.ts",
		"user.spec.ts",
		"README.md",
		".cache/ghost.ts",
		"node_modules/pkg/index.ts",
	} {
		writeFile(t, filepath.Join(dir, rel), "")
	}

	got, err := DiscoverModels(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{"admin/audit_log", "post", "user"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDiscoverModels_MissingDir(t *testing.T) {
	_, err := DiscoverModels(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if ErrorCode(err) != ErrCodeSourceDiscover {
		t.Fatalf("expected %s, got %v", ErrCodeSourceDiscover, err)
	}
}
