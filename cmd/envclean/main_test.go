package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bft-labs/envclean/internal/app"
	"github.com/bft-labs/envclean/internal/domain"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"ENVCLEAN_PATH", "ENVCLEAN_CHECK", "ENVCLEAN_DIFF", "ENVCLEAN_WATCH", "ENVCLEAN_LOCK", "ENVCLEAN_QUIET"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	root := newRootCommand(&out, zerolog.New(io.Discard))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeEnv(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(b)
}

func TestRoot_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	path := writeEnv(t, dir, "FOO=hello\nworld%\nBAR=42\n")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := readFile(t, path); got != "FOO=helloworld\nBAR=42\n" {
		t.Errorf("file = %q", got)
	}
	if out != app.SuccessMessage+"\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRoot_PositionalPathAndDiff(t *testing.T) {
	path := writeEnv(t, t.TempDir(), "KEY=line1\nline2\nline3%")

	out, err := execute(t, path, "--diff")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := readFile(t, path); got != "KEY=line1line2line3" {
		t.Errorf("file = %q", got)
	}
	for _, want := range []string{"-KEY=line1\n", "+KEY=line1line2line3\n", app.SuccessMessage} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout %q missing %q", out, want)
		}
	}
}

func TestRoot_Quiet(t *testing.T) {
	path := writeEnv(t, t.TempDir(), "A=1\n")

	out, err := execute(t, "--path", path, "-q")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
}

func TestRoot_Check(t *testing.T) {
	dir := t.TempDir()
	path := writeEnv(t, dir, "A=1%\n")

	_, err := execute(t, path, "--check")
	if !errors.Is(err, domain.ErrNeedsNormalization) {
		t.Fatalf("error = %v, want ErrNeedsNormalization", err)
	}
	if got := readFile(t, path); got != "A=1%\n" {
		t.Errorf("check mode wrote the file: %q", got)
	}

	writeEnv(t, dir, "A=1\n")
	out, err := execute(t, path, "--check")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != checkOKMessage+"\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRoot_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	out, err := execute(t, path)
	if !domain.IsFileAccess(err) {
		t.Fatalf("error = %v, want FileAccessError", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want no success message", out)
	}
}

func TestRoot_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeEnv(t, dir, "A=x\ny\n")
	cfgFile := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("path = \""+filepath.ToSlash(path)+"\"\nquiet = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "--config", cfgFile, "--lock")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := readFile(t, path); got != "A=xy\n" {
		t.Errorf("file = %q", got)
	}
	if out != "" {
		t.Errorf("stdout = %q, want quiet from config file", out)
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	path := writeEnv(t, t.TempDir(), "A=1\n")

	if _, err := execute(t, path, "--check", "--watch"); err == nil {
		t.Error("expected error for --check with --watch")
	}
	if _, err := execute(t, path, "--log-level", "loud"); err == nil {
		t.Error("expected error for unknown log level")
	}
	if _, err := execute(t, path, "extra"); err == nil {
		t.Error("expected error for two positional args")
	}
}
