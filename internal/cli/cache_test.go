package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "dotwalk")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "dotwalk"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigFileXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := configFile()
	if err != nil {
		t.Fatalf("configFile() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", "dotwalk", "config.toml"); path != want {
		t.Errorf("configFile() = %q, want %q", path, want)
	}
}

func TestCachePath(t *testing.T) {
	isolate(t)
	res := execute(t, "", "cache", "path")
	if res.err != nil {
		t.Fatalf("cache path: %v", res.err)
	}
	want, _ := cacheDir()
	if got := strings.TrimSpace(res.stdout); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCachePathFromConfig(t *testing.T) {
	cfgDir := isolate(t)
	dir := filepath.Join(t.TempDir(), "artifacts")
	writeFile(t, cfgDir, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	res := execute(t, "", "cache", "path")
	if res.err != nil {
		t.Fatalf("cache path: %v", res.err)
	}
	if got := strings.TrimSpace(res.stdout); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCacheClear(t *testing.T) {
	isolate(t)
	dir, _ := cacheDir()
	entry := writeFile(t, dir, "entry", "data")

	res := execute(t, "", "cache", "clear")
	if res.err != nil {
		t.Fatalf("cache clear: %v", res.err)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Errorf("cache entry survived clear: %v", err)
	}
	if !strings.Contains(res.stderr, "Cleared") {
		t.Errorf("stderr = %q, want a Cleared line", res.stderr)
	}
}
