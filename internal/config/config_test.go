package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Collection != "budgetable" {
		t.Fatalf("default collection = %q, want budgetable", cfg.Server.Collection)
	}
	if cfg.Store.Backend != "pocketbase" {
		t.Fatalf("default backend = %q, want pocketbase", cfg.Store.Backend)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("default theme = %q", cfg.Appearance.Theme)
	}
}

func TestCredentialEnvOverridesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PocketBase.Email = "file@example.com"
	cfg.PocketBase.Password = "filepw"

	t.Setenv("EMAIL", "env@example.com")
	t.Setenv("PASSWORD", "envpw")

	if got := GetEmail(cfg); got != "env@example.com" {
		t.Fatalf("GetEmail = %q, want env value", got)
	}
	if got := GetPassword(cfg); got != "envpw" {
		t.Fatalf("GetPassword = %q, want env value", got)
	}
}

func TestCredentialFallsBackToConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PocketBase.Email = "file@example.com"

	t.Setenv("EMAIL", "")

	if got := GetEmail(cfg); got != "file@example.com" {
		t.Fatalf("GetEmail = %q, want config value", got)
	}
}

func TestCollectionOverride(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("BUDGETABLE_COLLECTION", "")
	if got := GetCollection(cfg); got != "budgetable" {
		t.Fatalf("GetCollection = %q, want default", got)
	}

	t.Setenv("BUDGETABLE_COLLECTION", "expenses")
	if got := GetCollection(cfg); got != "expenses" {
		t.Fatalf("GetCollection = %q, want env override", got)
	}

	cfg.Server.Collection = ""
	t.Setenv("BUDGETABLE_COLLECTION", "")
	if got := GetCollection(cfg); got != "budgetable" {
		t.Fatalf("GetCollection with empty config = %q, want default", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Collection != "budgetable" {
		t.Fatalf("collection = %q, want default", cfg.Server.Collection)
	}
	if Exists() {
		t.Fatal("Exists reported a file that was never written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9999"
	cfg.Store.Backend = "sqlite"
	cfg.Store.DBPath = filepath.Join(dir, "b.db")

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("config file missing after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Addr != "127.0.0.1:9999" {
		t.Fatalf("addr = %q", loaded.Server.Addr)
	}
	if loaded.Store.Backend != "sqlite" {
		t.Fatalf("backend = %q", loaded.Store.Backend)
	}
}
