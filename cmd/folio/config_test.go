package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	content := []byte("page:\n  width: 400\nfont:\n  size: 12\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Page.Width != 400 {
		t.Errorf("Expected page width 400, got %v", cfg.Page.Width)
	}
	if cfg.Page.Height != 600 {
		t.Errorf("Expected default page height 600, got %v", cfg.Page.Height)
	}
	if cfg.Font.Size != 12 {
		t.Errorf("Expected font size 12, got %v", cfg.Font.Size)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
