package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forgectl/forgectl/internal/cache"
)

func TestResolveMissingFilesFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITHUB_COM_API_TOKEN", "env-token")

	cfg, err := Resolve(dir, "github.com", "owner/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("expected env fallback token, got %q", cfg.APIToken)
	}
}

func TestResolveMissingFilesAndNoEnvIsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Resolve(dir, "gitlab.example.com", "owner/repo"); err == nil {
		t.Fatal("expected an error when no config file and no env token exist")
	}
}

func TestResolvePrecedenceDomainOverridesBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, BaseConfigFile), `api_token = "base-token"`)
	writeFile(t, filepath.Join(dir, DomainKey("github.com")+".toml"), `api_token = "domain-token"`)

	cfg, err := Resolve(dir, "github.com", "owner/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.APIToken != "domain-token" {
		t.Errorf("expected domain file to override base, got %q", cfg.APIToken)
	}
}

func TestResolvePrecedencePathOverridesDomain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DomainKey("github.com")+".toml"), `api_token = "domain-token"`)
	pathFile := DomainKey("github.com") + "_" + PathKey("owner/repo") + ".toml"
	writeFile(t, filepath.Join(dir, pathFile), `api_token = "path-token"`)

	cfg, err := Resolve(dir, "github.com", "owner/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.APIToken != "path-token" {
		t.Errorf("expected path-scoped file to override domain file, got %q", cfg.APIToken)
	}
}

func TestResolveParsesPerOperationExpirationAndMaxPages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, BaseConfigFile), `
api_token = "tok"
cache_api_merge_request_expiration = "2h"
max_pages_api_merge_request = 3
max_pages_api_pipeline = 100
`)

	cfg, err := Resolve(dir, "github.com", "owner/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := cfg.CacheExpiration(cache.MergeRequest); got != 7200 {
		t.Errorf("expected 7200s TTL, got %d", got)
	}
	if got := cfg.MaxPages(cache.MergeRequest); got != 3 {
		t.Errorf("expected max_pages 3, got %d", got)
	}
	if got := cfg.MaxPages(cache.Pipeline); got != 10 {
		t.Errorf("expected max_pages clamped to RESTAPIMaxPages=10, got %d", got)
	}
}

func TestResolveMalformedTOMLIsConfigurationError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, BaseConfigFile), `not = [valid toml`)

	if _, err := Resolve(dir, "github.com", "owner/repo"); err == nil {
		t.Fatal("expected a configuration error for malformed TOML")
	}
}

func TestDomainKeyAndPathKeyEncoding(t *testing.T) {
	if got := DomainKey("gitlab.example.com"); got != "gitlab_example_com" {
		t.Errorf("unexpected DomainKey: %q", got)
	}
	if got := PathKey("owner/repo/sub"); got != "owner_repo_sub" {
		t.Errorf("unexpected PathKey: %q", got)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
