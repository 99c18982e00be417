package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileCache_Missing(t *testing.T) {
	c := LoadFileCache(filepath.Join(t.TempDir(), "nope.json"), nil)
	if c.Len() != 0 {
		t.Errorf("Missing file should give empty cache, got %d entries", c.Len())
	}
}

func TestLoadFileCache_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := LoadFileCache(path, nil)
	if c.Len() != 0 {
		t.Errorf("Corrupt file should give empty cache, got %d entries", c.Len())
	}
}

func TestFileCache_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts", ".translation_cache.json")

	c := LoadFileCache(path, nil)
	c.Set("en|zh-CN|Hello", "你好")
	c.Set("auto|en|<b>粗体</b>", "<b>bold</b>")

	if err := c.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Cache file not written: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "你好") || !strings.Contains(text, "<b>bold</b>") {
		t.Errorf("Expected unescaped UTF-8 and markup:\n%s", text)
	}
	if !strings.Contains(text, "\n  \"") {
		t.Errorf("Expected two-space indentation:\n%s", text)
	}
	if strings.Index(text, "auto|en") > strings.Index(text, "en|zh-CN") {
		t.Errorf("Expected sorted keys:\n%s", text)
	}

	reloaded := LoadFileCache(path, nil)
	if val, ok := reloaded.Get("en|zh-CN|Hello"); !ok || val != "你好" {
		t.Errorf("Reloaded cache missing entry, got %q", val)
	}
	if reloaded.Path() != path {
		t.Errorf("Path() = %q, want %q", reloaded.Path(), path)
	}
}

func TestFileCache_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c := LoadFileCache(filepath.Join(dir, "cache.json"), nil)
	c.Set("k", "v")
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("Expected only the cache file, got %d files", len(files))
	}
}
