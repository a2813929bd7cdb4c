package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("Credential from environment", func(t *testing.T) {
		t.Setenv("TAVILY_API_KEY", "tvly-test-key")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Expected valid config, got: %v", err)
		}

		if cfg.Tavily.APIKey != "tvly-test-key" {
			t.Errorf("Expected API key from env, got %q", cfg.Tavily.APIKey)
		}
	})

	t.Run("Missing credential", func(t *testing.T) {
		t.Setenv("TAVILY_API_KEY", "")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		err = cfg.Validate()
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
		}
	})

	t.Run("Whitespace credential is missing", func(t *testing.T) {
		t.Setenv("TAVILY_API_KEY", "   ")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
		}
	})

	t.Run("Credential from config file", func(t *testing.T) {
		t.Setenv("TAVILY_API_KEY", "")

		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("tavily:\n  api_key: tvly-from-file\n  max_results: 3\n")
		if err := os.WriteFile(path, data, 0600); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Expected valid config, got: %v", err)
		}
		if cfg.Tavily.APIKey != "tvly-from-file" {
			t.Errorf("Expected API key from file, got %q", cfg.Tavily.APIKey)
		}
		if cfg.Tavily.MaxResults != 3 {
			t.Errorf("Expected max_results 3, got %d", cfg.Tavily.MaxResults)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("TAVILY_API_KEY", "tvly-test-key")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Tavily.BaseURL != "https://api.tavily.com" {
			t.Errorf("Unexpected default base URL: %q", cfg.Tavily.BaseURL)
		}
		if cfg.Tavily.Timeout != 30 {
			t.Errorf("Unexpected default timeout: %d", cfg.Tavily.Timeout)
		}
		if cfg.Tavily.MaxResults != 5 {
			t.Errorf("Unexpected default max results: %d", cfg.Tavily.MaxResults)
		}
		if cfg.Tavily.SearchDepth != "advanced" {
			t.Errorf("Unexpected default search depth: %q", cfg.Tavily.SearchDepth)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Unexpected default log level: %q", cfg.Logging.Level)
		}
	})
}
