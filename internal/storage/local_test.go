package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/personal-blog-api/internal/models"
)

func newTestStorage(t *testing.T) *Local {
	t.Helper()
	root := t.TempDir()
	s, err := NewLocal(filepath.Join(root, "images"), filepath.Join(root, "md"))
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		fileType models.FileType
		name     string
		want     bool
	}{
		{models.FileTypeImage, "cat.png", true},
		{models.FileTypeImage, "CAT.JPEG", true},
		{models.FileTypeImage, "anim.gif", true},
		{models.FileTypeImage, "doc.md", false},
		{models.FileTypeImage, "noext", false},
		{models.FileTypeImage, "evil.png.exe", false},
		{models.FileTypeMarkdown, "post.md", true},
		{models.FileTypeMarkdown, "post.markdown", true},
		{models.FileTypeMarkdown, "post.txt", false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.fileType, tt.name); got != tt.want {
			t.Errorf("Allowed(%s, %q) = %v, want %v", tt.fileType, tt.name, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"my photo.png":       "my_photo.png",
		"../../etc/passwd":   "passwd",
		`C:\Users\me\a.jpg`:  "a.jpg",
		".hidden.md":         "hidden.md",
		"héllo wörld.md":     "hllo_wrld.md",
		"照片.png":             "png",
		"???":                "file",
		"report-2024_v2.md": "report-2024_v2.md",
	}

	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocal_SaveAndRead(t *testing.T) {
	s := newTestStorage(t)

	rel, name, err := s.Save(models.FileTypeMarkdown, "My Post.md", strings.NewReader("# Title"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if name != "My_Post.md" {
		t.Errorf("Unexpected sanitized name %q", name)
	}
	if !regexp.MustCompile(`^20240309/[0-9a-f]{32}_My_Post\.md$`).MatchString(rel) {
		t.Errorf("Unexpected relative path %q", rel)
	}

	content, err := s.Read(models.FileTypeMarkdown, rel)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(content) != "# Title" {
		t.Errorf("Unexpected content %q", content)
	}

	if err := s.Remove(models.FileTypeMarkdown, rel); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Read(models.FileTypeMarkdown, rel); !os.IsNotExist(err) {
		t.Errorf("Expected file to be gone, got %v", err)
	}
}

func TestLocal_PathStaysInRoot(t *testing.T) {
	s := newTestStorage(t)

	full, err := s.Path(models.FileTypeImage, "../../../etc/passwd")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if !strings.HasPrefix(full, s.roots[models.FileTypeImage]) {
		t.Errorf("Path %q escaped the root", full)
	}

	if _, err := s.Path(models.FileTypeImage, ""); err != ErrInvalidPath {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
}
