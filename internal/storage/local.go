package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personal-blog-api/internal/models"
)

// ErrInvalidPath is returned for relative paths that escape the root
var ErrInvalidPath = errors.New("invalid media path")

var allowedExtensions = map[models.FileType]map[string]bool{
	models.FileTypeImage:    {"png": true, "jpg": true, "jpeg": true, "gif": true},
	models.FileTypeMarkdown: {"md": true, "markdown": true},
}

// Extension returns the lower-cased extension without the dot
func Extension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// Allowed reports whether filename has an extension accepted for fileType
func Allowed(fileType models.FileType, filename string) bool {
	return allowedExtensions[fileType][Extension(filename)]
}

// SanitizeFilename reduces name to a safe base name of ASCII letters,
// digits, dots, dashes and underscores
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimLeft(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// Local stores uploads on disk under one root per file type, partitioned
// by upload day
type Local struct {
	roots map[models.FileType]string
	now   func() time.Time
}

// NewLocal creates the storage and makes sure both roots exist
func NewLocal(imageDir, markdownDir string) (*Local, error) {
	roots := map[models.FileType]string{
		models.FileTypeImage:    imageDir,
		models.FileTypeMarkdown: markdownDir,
	}
	for fileType, dir := range roots {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s storage at %s: %w", fileType, dir, err)
		}
	}
	return &Local{roots: roots, now: time.Now}, nil
}

// Save writes r to <root>/<YYYYMMDD>/<uuidhex>_<sanitized name> and returns
// the path relative to the root together with the sanitized name
func (s *Local) Save(fileType models.FileType, originalName string, r io.Reader) (string, string, error) {
	root, ok := s.roots[fileType]
	if !ok {
		return "", "", fmt.Errorf("unknown file type %q", fileType)
	}

	sanitized := SanitizeFilename(originalName)
	day := s.now().Format("20060102")
	rel := path.Join(day, strings.ReplaceAll(uuid.NewString(), "-", "")+"_"+sanitized)

	dir := filepath.Join(root, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", "", fmt.Errorf("failed to close file: %w", err)
	}

	return rel, sanitized, nil
}

// Path resolves a stored relative path to a file path inside the root
func (s *Local) Path(fileType models.FileType, rel string) (string, error) {
	root, ok := s.roots[fileType]
	if !ok {
		return "", fmt.Errorf("unknown file type %q", fileType)
	}

	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(root, filepath.FromSlash(clean[1:])), nil
}

// Read returns the content of a stored file
func (s *Local) Read(fileType models.FileType, rel string) ([]byte, error) {
	full, err := s.Path(fileType, rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Remove deletes a stored file, ignoring files that are already gone
func (s *Local) Remove(fileType models.FileType, rel string) error {
	full, err := s.Path(fileType, rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
