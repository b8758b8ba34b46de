package app

import (
	"context"
	"errors"
	"time"

	"github.com/bft-labs/envclean/internal/ports"
	"github.com/bft-labs/envclean/pkg/log"
	"github.com/bft-labs/envclean/pkg/normalize"
)

// SuccessMessage is printed after a file has been written.
const SuccessMessage = "Environment file has been cleaned up successfully!"

// Mode selects whether Clean writes the document back.
type Mode int

const (
	// ModeWrite always overwrites the document, even when unchanged.
	ModeWrite Mode = iota
	// ModeWriteChanged overwrites only when normalization changed the text.
	ModeWriteChanged
	// ModeCheck never writes.
	ModeCheck
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeWriteChanged:
		return "write-changed"
	case ModeCheck:
		return "check"
	default:
		return "unknown"
	}
}

// Report describes one run of the pipeline.
type Report struct {
	Path     string
	Original string
	Result   normalize.Result
	Changed  bool
	Written  bool
	Duration time.Duration
}

// Cleaner runs load → normalize → write against a DocumentStore.
type Cleaner struct {
	store  ports.DocumentStore
	locker ports.Locker
	logger log.Logger
}

// Option configures optional behavior of a Cleaner.
type Option func(*Cleaner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// WithLocker holds locker for the duration of every run.
func WithLocker(locker ports.Locker) Option {
	return func(c *Cleaner) {
		c.locker = locker
	}
}

// NewCleaner creates a Cleaner for store.
func NewCleaner(store ports.DocumentStore, opts ...Option) *Cleaner {
	c := &Cleaner{
		store:  store,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean runs the pipeline once. Load and save errors are returned as is;
// nothing is rolled back.
func (c *Cleaner) Clean(ctx context.Context, mode Mode) (report Report, err error) {
	start := time.Now()
	report.Path = c.store.Path()

	if c.locker != nil {
		if err := c.locker.Lock(ctx); err != nil {
			return report, err
		}
		defer func() {
			if uerr := c.locker.Unlock(); uerr != nil {
				c.logger.Warn("failed to release lock", log.String("path", report.Path), log.Err(uerr))
				err = errors.Join(err, uerr)
			}
		}()
	}

	text, err := c.store.Load(ctx)
	if err != nil {
		return report, err
	}
	c.logger.Debug("loaded document", log.String("path", report.Path), log.Int("bytes", len(text)))

	report.Original = text
	report.Result = normalize.Apply(text)
	report.Changed = report.Result.Text != text

	for _, e := range report.Result.Entries {
		if e.Continued() || e.MarkerStripped {
			c.logger.Debug("normalized entry",
				log.String("key", e.Key),
				log.Int("lines", e.Lines),
				log.Bool("marker", e.MarkerStripped),
			)
		}
	}

	if c.shouldWrite(mode, report.Changed) {
		if err := c.store.Save(ctx, report.Result.Text); err != nil {
			return report, err
		}
		report.Written = true
	}
	report.Duration = time.Since(start)

	c.logger.Info("normalized document",
		log.String("path", report.Path),
		log.String("mode", mode.String()),
		log.Int("entries", len(report.Result.Entries)),
		log.Int("merged", report.Result.Merged()),
		log.Int("markers", report.Result.MarkersStripped),
		log.Bool("changed", report.Changed),
		log.Bool("written", report.Written),
		log.Duration("took", report.Duration),
	)
	return report, nil
}

func (c *Cleaner) shouldWrite(mode Mode, changed bool) bool {
	switch mode {
	case ModeWrite:
		return true
	case ModeWriteChanged:
		return changed
	default:
		return false
	}
}

// Path returns the path of the document being cleaned.
func (c *Cleaner) Path() string {
	return c.store.Path()
}
