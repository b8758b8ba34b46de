package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Info("normalized",
		String("path", ".env"),
		Int("merged", 2),
		Bool("written", true),
		Duration("took", 1500*time.Millisecond),
		Err(errors.New("boom")),
	)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}

	if line["level"] != "info" {
		t.Errorf("level = %v, want info", line["level"])
	}
	if line["message"] != "normalized" {
		t.Errorf("message = %v, want normalized", line["message"])
	}
	if line["path"] != ".env" {
		t.Errorf("path = %v, want .env", line["path"])
	}
	if line["merged"] != float64(2) {
		t.Errorf("merged = %v, want 2", line["merged"])
	}
	if line["written"] != true {
		t.Errorf("written = %v, want true", line["written"])
	}
	if line["took"] != float64(1500) {
		t.Errorf("took = %v, want 1500", line["took"])
	}
	if line["error"] != "boom" {
		t.Errorf("error = %v, want boom", line["error"])
	}
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	z.Debug("hidden")
	z.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	z.Warn("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x", String("k", "v"))
	l.Warn("x")
	l.Error("x", Err(errors.New("e")))
}
