package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	fsadapter "github.com/bft-labs/envclean/internal/adapters/fs"
)

func waitForFile(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		got, _ = os.ReadFile(path)
		if string(got) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("file = %q, want %q", got, want)
}

func TestWatcher_CleansOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1%\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var mu sync.Mutex
	var reports []Report

	w := NewWatcher(
		NewCleaner(fsadapter.NewDocumentFile(path)),
		WithDebounce(20*time.Millisecond),
		WithReportHandler(func(r Report) {
			mu.Lock()
			defer mu.Unlock()
			reports = append(reports, r)
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial run happens before watching starts.
	waitForFile(t, path, "A=1\n")

	if err := os.WriteFile(path, []byte("FOO=hello\nworld%\nBAR=42\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	waitForFile(t, path, "FOO=helloworld\nBAR=42\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reports) < 2 {
		t.Fatalf("got %d reports, want at least 2", len(reports))
	}
	if !reports[0].Written {
		t.Error("initial run should have written the file")
	}
}

func TestWatcher_InitialRunError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	w := NewWatcher(NewCleaner(fsadapter.NewDocumentFile(path)))
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("Run on missing file returned nil error")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ".env")

	w := NewWatcher(NewCleaner(fsadapter.NewDocumentFile(path)))
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("Run on missing directory returned nil error")
	}
}
