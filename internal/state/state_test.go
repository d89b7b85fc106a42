package state

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	s := &State{Logger: NewLogger(&buf)}

	s.Logger.Debug("hidden detail")
	s.Logger.Warn("visible warning")
	if strings.Contains(buf.String(), "hidden detail") {
		t.Fatalf("debug output should be suppressed by default: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible warning") {
		t.Fatalf("expected warning in output: %q", buf.String())
	}

	s.SetVerbose(true)
	s.Logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug output in verbose mode: %q", buf.String())
	}
}

func TestLoadConfigOverrideAndDirectory(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	vault := filepath.Join(dir, "vault")
	if err := os.WriteFile(path, []byte("directory: "+vault+"\ntodo_tag: later\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(dir, path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TodoTag != "later" {
		t.Fatalf("expected todo tag from override file, got %q", cfg.TodoTag)
	}

	s := &State{Config: cfg, Logger: NewLogger(&bytes.Buffer{})}
	if got := s.Directory(); got != vault {
		t.Fatalf("expected configured directory, got %q", got)
	}

	viper.Set("directory", "")
	if got := s.Directory(); got != "." {
		t.Fatalf("expected working directory fallback, got %q", got)
	}
}

func TestNewHandlerScansDirectory(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	dir := t.TempDir()
	if _, err := LoadConfig(dir, ""); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	vault := filepath.Join(dir, "vault")
	for name, content := range map[string]string{
		"a.md":       "---\ntags: [x]\n---\none two\n",
		".git/b.md":  "ignored",
		"notes/c.md": "three words here",
	} {
		path := filepath.Join(vault, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	s := &State{Logger: NewLogger(&bytes.Buffer{})}
	h, err := s.NewHandler(context.Background(), vault, []string{".git"})
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	records, err := h.Records(context.Background())
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Words != 2 || records[1].Words != 3 {
		t.Fatalf("unexpected word counts %d, %d", records[0].Words, records[1].Words)
	}
}
