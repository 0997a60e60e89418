package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Data != "visualization/data" {
		t.Errorf("data = %q", cfg.Data)
	}
	if cfg.StateDir == "" {
		t.Error("state dir must default to something")
	}
	if !cfg.HideUnwindEdges {
		t.Error("unwind edges should be hidden by default")
	}
	if cfg.HideStorageStmts {
		t.Error("storage statements should be shown by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults, got %v", err)
	}
	if cfg.Data != Default().Data {
		t.Errorf("data = %q, want default", cfg.Data)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borrowscope.yaml")
	body := `
data: /tmp/analysis
function: foo
hide_unwind_edges: false
debug: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data != "/tmp/analysis" {
		t.Errorf("data = %q", cfg.Data)
	}
	if cfg.Function != "foo" {
		t.Errorf("function = %q", cfg.Function)
	}
	if cfg.HideUnwindEdges {
		t.Error("explicit false should override the default")
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
	// Keys absent from the file keep their defaults.
	if cfg.StateDir == "" {
		t.Error("state dir lost its default")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borrowscope.yaml")
	if err := os.WriteFile(path, []byte("data: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"existing directory", dir, false},
		{"http url", "http://localhost:8000/data", false},
		{"https url", "https://example.com/data", false},
		{"missing directory", filepath.Join(dir, "absent"), true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Data = tt.data
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateResolvesRelativePath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.Data = "."
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Data != cwd {
		t.Errorf("data = %q, want absolute %q", cfg.Data, cwd)
	}
}
