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
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() = %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	if got := defaultConfigPath(); got != filepath.Join("/tmp/custom-config", appName, configFile) {
		t.Errorf("defaultConfigPath() = %q", got)
	}
}
