package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadDirectories are the only upload destinations the file endpoints
// accept; anything else is rejected before touching the filesystem.
var UploadDirectories = []string{"test", "products", "commissions"}

func BaseUploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "uploads"
	}
	return filepath.Join(wd, "uploads")
}

// EnsureUploadDirs creates the upload subdirectories at startup.
func EnsureUploadDirs() error {
	for _, dir := range UploadDirectories {
		if err := os.MkdirAll(filepath.Join(BaseUploadDir(), dir), 0o755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// UploadPath resolves a directory name, rejecting anything outside the known
// set (which also shuts out path traversal).
func UploadPath(dir string) (string, error) {
	for _, d := range UploadDirectories {
		if d == dir {
			return filepath.Join(BaseUploadDir(), dir), nil
		}
	}
	return "", fmt.Errorf("unknown upload directory %q", dir)
}

// SafeFileName builds a unique on-disk name: timestamp, a random token, and
// the slugged original stem.
func SafeFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stem := GenerateSlug(strings.TrimSuffix(filepath.Base(original), ext))
	if stem == "" {
		stem = "file"
	}
	return fmt.Sprintf("%d-%s-%s%s", time.Now().UTC().UnixMilli(), uuid.New().String(), stem, ext)
}
