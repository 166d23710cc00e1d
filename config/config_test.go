package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":10001" {
		t.Fatalf("unexpected default address: %q", cfg.Server.Address)
	}
	if cfg.Research.MaxSearchResults != 6 {
		t.Fatalf("unexpected default max_search_results: %d", cfg.Research.MaxSearchResults)
	}
	if cfg.Research.MaxTaskResults != 4 {
		t.Fatalf("unexpected default max_task_results: %d", cfg.Research.MaxTaskResults)
	}
	if cfg.Research.TaskPause != 200*time.Millisecond {
		t.Fatalf("unexpected default task_pause: %v", cfg.Research.TaskPause)
	}
	if cfg.Sources.Provider != "serper" {
		t.Fatalf("unexpected default provider: %q", cfg.Sources.Provider)
	}
	if cfg.Scraper.Fetcher != "readability" {
		t.Fatalf("unexpected default fetcher: %q", cfg.Scraper.Fetcher)
	}
	if !cfg.Telemetry.Enabled {
		t.Fatalf("telemetry must default to enabled")
	}
	if cfg.Storage.Redis.Host != "" {
		t.Fatalf("redis must default to disabled, got host %q", cfg.Storage.Redis.Host)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "briefer.json")
	body := `{
  "server": {"address": ":9999"},
  "research": {"max_search_results": 2, "task_pause": "50ms"},
  "sources": {"provider": "local", "local_corpus": "/tmp/corpus.json"}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9999" {
		t.Fatalf("file address not applied: %q", cfg.Server.Address)
	}
	if cfg.Research.MaxSearchResults != 2 {
		t.Fatalf("file max_search_results not applied: %d", cfg.Research.MaxSearchResults)
	}
	if cfg.Research.TaskPause != 50*time.Millisecond {
		t.Fatalf("file task_pause not applied: %v", cfg.Research.TaskPause)
	}
	if cfg.Sources.Provider != "local" || cfg.Sources.LocalCorpus != "/tmp/corpus.json" {
		t.Fatalf("file sources not applied: %#v", cfg.Sources)
	}
	// Untouched keys keep their defaults.
	if cfg.Research.MaxTaskResults != 4 {
		t.Fatalf("default max_task_results lost: %d", cfg.Research.MaxTaskResults)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env-test")
	t.Setenv("SERPER_API_KEY", "serper-env")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-env-test" {
		t.Fatalf("OPENAI_API_KEY not applied: %q", cfg.LLM.APIKey)
	}
	if cfg.Sources.SerperAPIKey != "serper-env" {
		t.Fatalf("SERPER_API_KEY not applied: %q", cfg.Sources.SerperAPIKey)
	}
	if cfg.Storage.Redis.Host != "cache.internal" || cfg.Storage.Redis.Port != 6380 {
		t.Fatalf("redis env not applied: %#v", cfg.Storage.Redis)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected an error for a missing explicit config file")
	}
}
