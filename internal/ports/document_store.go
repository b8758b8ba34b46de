package ports

import "context"

// DocumentStore reads and writes one text document.
type DocumentStore interface {
	// Load returns the full document text.
	Load(ctx context.Context) (string, error)

	// Save replaces the document with text, truncating prior content.
	Save(ctx context.Context, text string) error

	// Path identifies the document in logs and reports.
	Path() string
}
