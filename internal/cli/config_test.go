package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `elements = 5
items = ["red", "green", "blue", "white", "black"]

[cache]
backend = "redis"
prefix = "staging:"
redis_addr = "redis.internal:6379"
redis_db = 2

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Elements != 5 {
		t.Errorf("Elements = %d, want 5", cfg.Elements)
	}
	if len(cfg.Items) != 5 || cfg.Items[0] != "red" {
		t.Errorf("Items = %v, want five colors starting with red", cfg.Items)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, BackendRedis)
	}
	if cfg.Cache.Prefix != "staging:" {
		t.Errorf("Cache.Prefix = %q, want staging:", cfg.Cache.Prefix)
	}
	if cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("Cache.RedisAddr = %q, want redis.internal:6379", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache.RedisDB = %d, want 2", cfg.Cache.RedisDB)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want :9090", cfg.Serve.Addr)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("elements = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Elements != 3 {
		t.Errorf("Elements = %d, want 3", cfg.Elements)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("Cache.Backend = %q, want empty default", cfg.Cache.Backend)
	}
	if cfg.Serve.Addr != "" {
		t.Errorf("Serve.Addr = %q, want empty default", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() on missing file error: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig() on missing file returned nil config")
	}
	if cfg.Elements != 0 || len(cfg.Items) != 0 {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("elements = [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed TOML")
	}
}
