package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/server"
	"github.com/matzehuels/permgroup/pkg/store"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, appName, configFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
provider = "pooled"
pool_capacity = 16

[cache]
backend = "none"

[server]
addr = ":9000"
request_timeout = "5s"

[store]
backend = "sqlite"
path = "groups.db"
`)
	got, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Provider = "pooled"
	want.PoolCapacity = 16
	want.Cache.Backend = cacheBackendNone
	want.Server.Addr = ":9000"
	want.Server.RequestTimeout = 5 * time.Second
	want.Store = store.Config{Backend: store.BackendSQLite, Path: "groups.db"}
	if diff := cmp.Diff(want, got, cmpConfig); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

// cmpConfig ignores the build options, which never come from the file.
var cmpConfig = cmp.FilterPath(func(p cmp.Path) bool {
	return p.String() == "Server.Build"
}, cmp.Ignore())

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")
	got, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("implicit missing config: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), got, cmpConfig); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if _, err := loadConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", `provider = `, errors.ErrCodeInvalidFormat},
		{"unknown key", `colour = "red"`, errors.ErrCodeInvalidFormat},
		{"provider", `provider = "arena"`, errors.ErrCodeInvalidInput},
		{"cache", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"store", "[store]\nbackend = \"postgres\"", errors.ErrCodeInvalidInput},
		{"capacity", `pool_capacity = -1`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := loadConfig(path, true)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestConfigFlagsOverride(t *testing.T) {
	isolate(t)
	writeConfig(t, os.Getenv("XDG_CONFIG_HOME"), `provider = "shared"`)

	c, _, err := execute(t, "orbit", "-n", "3", "-p", "0")
	if err != nil {
		t.Fatal(err)
	}
	if c.Config.Provider != "shared" {
		t.Errorf("provider = %q, want shared from the config file", c.Config.Provider)
	}

	c, _, err = execute(t, "orbit", "-n", "3", "-p", "0", "--provider", "pooled")
	if err != nil {
		t.Fatal(err)
	}
	if c.Config.Provider != "pooled" {
		t.Errorf("provider = %q, want the flag value", c.Config.Provider)
	}
}

func TestDefaultConfigServer(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != server.DefaultAddr || cfg.Server.MaxLive != server.DefaultMaxLive {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}
