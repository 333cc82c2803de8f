// Package config resolves the layered TOML configuration chain: a base
// file, then a per-domain file, then a per-domain-and-project-path file,
// each optional, low to high precedence. This is a deliberate departure
// from the upstream tool's flat "<domain>.<key>=<value>" single-file
// format, in favour of github.com/pelletier/go-toml - a direct
// dependency of the wider monorepo this client's ambient stack is
// modeled on.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/xtime"
)

// BaseConfigFile is the lowest-precedence file in the resolution chain.
const BaseConfigFile = "gitar.toml"

// DefaultConfigDir is consulted when the CLI layer does not override it.
const DefaultConfigDir = "~/.config/gitar"

const defaultRateLimitThreshold = 10

var apiOperations = []cache.ApiOperation{
	cache.MergeRequest, cache.Pipeline, cache.Project, cache.ContainerRegistry,
	cache.Release, cache.SinglePage, cache.Gist, cache.RepositoryTag,
}

// Config is the resolved configuration for one (domain, path) pair.
type Config struct {
	APIToken                          string
	CacheLocation                     string
	PreferredAssigneeUsername         string
	MergeRequestDescriptionSignature  string
	RateLimitThreshold                int

	cacheExpiration map[cache.ApiOperation]xtime.Seconds
	maxPages        map[cache.ApiOperation]int
}

func newConfig() *Config {
	return &Config{
		RateLimitThreshold: defaultRateLimitThreshold,
		cacheExpiration:    map[cache.ApiOperation]xtime.Seconds{},
		maxPages:           map[cache.ApiOperation]int{},
	}
}

// CacheExpiration returns the configured user TTL for op, zero if unset.
func (c *Config) CacheExpiration(op cache.ApiOperation) xtime.Seconds { return c.cacheExpiration[op] }

// MaxPages returns the configured page cap for op, zero if unset
// (meaning "use httpapi.RESTAPIMaxPages").
func (c *Config) MaxPages(op cache.ApiOperation) int { return c.maxPages[op] }

// DomainKey encodes a domain for use in a config filename or env var:
// dots become underscores.
func DomainKey(domain string) string { return strings.ReplaceAll(domain, ".", "_") }

// PathKey encodes a project path for use in a config filename: slashes
// become underscores.
func PathKey(path string) string { return strings.ReplaceAll(path, "/", "_") }

// Resolve reads the layered TOML chain for (domain, path) rooted at
// configDir: gitar.toml, then <domain>.toml, then <domain>_<path>.toml.
// A missing file is skipped, not an error. If none of the three exist,
// it falls back to <DOMAIN_UPPER_UNDERSCORED>_API_TOKEN from the
// environment.
func Resolve(configDir, domain, path string) (*Config, error) {
	files := []string{
		filepath.Join(configDir, BaseConfigFile),
		filepath.Join(configDir, DomainKey(domain)+".toml"),
		filepath.Join(configDir, DomainKey(domain)+"_"+PathKey(path)+".toml"),
	}

	cfg := newConfig()
	found := false
	for _, f := range files {
		tree, err := toml.LoadFile(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, &errorsx.ConfigurationError{Msg: "parsing " + f, Cause: err}
		}
		found = true
		if err := applyTree(cfg, tree); err != nil {
			return nil, err
		}
	}

	if !found {
		envKey := strings.ToUpper(DomainKey(domain)) + "_API_TOKEN"
		token := os.Getenv(envKey)
		if token == "" {
			return nil, &errorsx.ConfigurationNotFoundError{Path: strings.Join(files, ", ")}
		}
		cfg.APIToken = token
	}
	return cfg, nil
}

func applyTree(cfg *Config, tree *toml.Tree) error {
	if v, ok := tree.Get("api_token").(string); ok {
		cfg.APIToken = v
	}
	if v, ok := tree.Get("cache_location").(string); ok {
		cfg.CacheLocation = v
	}
	if v, ok := tree.Get("preferred_assignee_username").(string); ok {
		cfg.PreferredAssigneeUsername = v
	}
	if v, ok := tree.Get("merge_request_description_signature").(string); ok {
		cfg.MergeRequestDescriptionSignature = v
	}
	if v, ok := tree.Get("rate_limit_remaining_threshold").(int64); ok {
		cfg.RateLimitThreshold = int(v)
	}
	for _, op := range apiOperations {
		ttlKey := fmt.Sprintf("cache_api_%s_expiration", op)
		if v, ok := tree.Get(ttlKey).(string); ok {
			secs, err := xtime.ParseDuration(v)
			if err != nil {
				return &errorsx.ConfigurationError{Msg: ttlKey, Cause: err}
			}
			cfg.cacheExpiration[op] = secs
		}
		pagesKey := fmt.Sprintf("max_pages_api_%s", op)
		if v, ok := tree.Get(pagesKey).(int64); ok {
			n := int(v)
			if n > httpapi.RESTAPIMaxPages {
				n = httpapi.RESTAPIMaxPages
			}
			cfg.maxPages[op] = n
		}
	}
	return nil
}
