package fs

import (
	"context"
	"os"

	"github.com/bft-labs/envclean/internal/domain"
)

// DefaultPath is the document normalized when no path is configured.
const DefaultPath = ".env"

// filePerm applies only when Save has to create the file.
const filePerm = 0o644

// DocumentFile implements ports.DocumentStore for a file on disk.
// Save truncates and rewrites in place: no temp file, no rename, no backup.
type DocumentFile struct {
	path string
}

// NewDocumentFile creates a DocumentFile for path.
func NewDocumentFile(path string) *DocumentFile {
	return &DocumentFile{path: path}
}

// Load reads the whole file.
func (d *DocumentFile) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", domain.NewFileAccessError(domain.OpRead, d.path, err)
	}
	return string(data), nil
}

// Save overwrites the file with text.
func (d *DocumentFile) Save(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return domain.NewFileAccessError(domain.OpWrite, d.path, os.WriteFile(d.path, []byte(text), filePerm))
}

// Path returns the file path.
func (d *DocumentFile) Path() string {
	return d.path
}
