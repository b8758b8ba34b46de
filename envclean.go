// Package envclean repairs environment files whose values were split across
// several lines by an export tool.
//
// Example usage:
//
//	if err := envclean.CleanFile(ctx, ".env"); err != nil {
//	    log.Fatal(err)
//	}
//
// For in-memory text use Normalize, or the pkg/normalize package directly.
package envclean

import (
	"context"

	fsadapter "github.com/bft-labs/envclean/internal/adapters/fs"
	"github.com/bft-labs/envclean/internal/app"
	"github.com/bft-labs/envclean/internal/domain"
	"github.com/bft-labs/envclean/pkg/normalize"
)

// DefaultPath is the file the CLI normalizes when no path is given.
const DefaultPath = fsadapter.DefaultPath

// FileAccessError reports a failure to read or write the environment file.
type FileAccessError = domain.FileAccessError

// Result describes what normalization changed.
type Result = normalize.Result

// Normalize returns text with multi-line values collapsed and trailing '%'
// markers removed.
func Normalize(text string) string {
	return normalize.Normalize(text)
}

// CleanFile normalizes the file at path and overwrites it in place.
func CleanFile(ctx context.Context, path string) error {
	_, err := Clean(ctx, path)
	return err
}

// Clean normalizes the file at path, overwrites it and returns the result.
func Clean(ctx context.Context, path string) (Result, error) {
	report, err := app.NewCleaner(fsadapter.NewDocumentFile(path)).Clean(ctx, app.ModeWrite)
	if err != nil {
		return Result{}, err
	}
	return report.Result, nil
}
