package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "HTTP_PORT", "GRAPHLIT_API_URL", "GRAPHLIT_HTTP_TIMEOUT",
		"GRAPHLIT_JWT_SECRET", "GRAPHLIT_ENVIRONMENT_ID", "GRAPHLIT_ORGANIZATION_ID")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.GraphQLURL != DefaultGraphQLEndpoint {
		t.Fatalf("expected default endpoint, got %q", cfg.GraphQLURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.HTTPTimeout)
	}
	if cfg.HasCredentialInputs() {
		t.Fatalf("expected no credential inputs")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GRAPHLIT_API_URL", "http://localhost:4000/graphql")
	t.Setenv("GRAPHLIT_HTTP_TIMEOUT", "30s")
	t.Setenv("GRAPHLIT_JWT_SECRET", "k")
	t.Setenv("GRAPHLIT_ENVIRONMENT_ID", "e1")
	t.Setenv("GRAPHLIT_ORGANIZATION_ID", "o1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.GraphQLURL != "http://localhost:4000/graphql" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.HTTPTimeout)
	}
	if !cfg.HasCredentialInputs() {
		t.Fatalf("expected credential inputs")
	}
}
