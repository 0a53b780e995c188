package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src", "components")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	file := filepath.Join(sub, "Widget.tsx")
	if err := os.WriteFile(file, []byte("export {}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := CanonicalizePath(file, dir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	want := "src/components/Widget.tsx"
	if got != want {
		t.Errorf("CanonicalizePath = %q, want %q", got, want)
	}
}

func TestCanonicalizePath_MissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "src", "Ghost.ts")

	got, err := CanonicalizePath(missing, dir)
	if err != nil {
		t.Fatalf("CanonicalizePath should tolerate a missing file, got error: %v", err)
	}
	want := "src/Ghost.ts"
	if got != want {
		t.Errorf("CanonicalizePath = %q, want %q", got, want)
	}
}

func TestCanonicalizePath_OutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	file := filepath.Join(outside, "other.ts")

	got, err := CanonicalizePath(file, root)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if got == "" || got[:2] != ".." {
		t.Errorf("expected canonical path to climb out with '..', got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already forward slashes", "src/index.ts", "src/index.ts"},
		{"backslashes", `src\components\Widget.tsx`, "src/components/Widget.tsx"},
		{"mixed", `src\components/Widget.tsx`, "src/components/Widget.tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.in); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinRepoPath(t *testing.T) {
	root := string(filepath.Separator) + filepath.Join("project", "root")
	got := JoinRepoPath(root, "src/components/Widget.tsx")
	want := filepath.Join(root, "src", "components", "Widget.tsx")
	if got != want {
		t.Errorf("JoinRepoPath = %q, want %q", got, want)
	}
}

func TestIsWithinRepo(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "src", "index.ts")
	outside := filepath.Join(filepath.Dir(root), "elsewhere", "index.ts")

	if !IsWithinRepo(inside, root) {
		t.Errorf("expected %q to be within %q", inside, root)
	}
	if IsWithinRepo(outside, root) {
		t.Errorf("expected %q to be outside %q", outside, root)
	}
}

func TestCanonicalizeThenJoinRoundTrips(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	file := filepath.Join(sub, "index.ts")
	if err := os.WriteFile(file, []byte("export {}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	canonical, err := CanonicalizePath(file, dir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	rejoined := JoinRepoPath(dir, canonical)
	resolvedFile, _ := filepath.EvalSymlinks(file)
	resolvedRejoined, _ := filepath.EvalSymlinks(rejoined)
	if resolvedRejoined != resolvedFile {
		t.Errorf("round trip mismatch: JoinRepoPath(%q) = %q, want %q", canonical, resolvedRejoined, resolvedFile)
	}
}
