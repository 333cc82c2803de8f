// Package remote resolves a (domain, path) pair plus config into a
// fully wired provider handle: cache, HTTP client, backoff, and the
// github or gitlab adapter bundled behind internal/forge's capability
// interfaces.
package remote

import (
	"context"
	"net/http"
	"regexp"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/config"
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/github"
	"github.com/forgectl/forgectl/internal/gitlab"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/xtime"
)

// RemoteURL is the immutable (domain, path) tuple every invocation
// resolves a provider handle from, created once per CLI invocation.
type RemoteURL struct {
	Domain string
	Path   string
}

// DomainKey and PathKey are the config-encoded forms of Domain/Path
// (dots and slashes swapped for underscores), matching
// internal/config's file-naming convention.
func (r RemoteURL) DomainKey() string { return config.DomainKey(r.Domain) }
func (r RemoteURL) PathKey() string   { return config.PathKey(r.Path) }

// CacheType selects between the on-disk file cache and the no-op cache.
type CacheType int

const (
	CacheFile CacheType = iota
	CacheNone
)

var (
	githubPrefix = regexp.MustCompile(`(?i)^github`)
	gitlabPrefix = regexp.MustCompile(`(?i)^gitlab`)
)

// Forge is the provider-agnostic capability bundle a command dispatches
// against; exactly one of the embedded fields is non-nil depending on
// which provider RemoteURL.Domain resolved to.
type Forge struct {
	GitHub *github.Forge
	GitLab *gitlab.Forge
}

// MergeRequest returns whichever provider's MergeRequests handle is
// live. Every other capability has an accessor of the same shape below,
// each dispatching to whichever of GitHub/GitLab is non-nil, so callers
// get one uniform handle regardless of provider.
func (f *Forge) MergeRequest() forge.MergeRequest {
	if f.GitHub != nil {
		return f.GitHub.MergeRequests
	}
	return f.GitLab.MergeRequests
}

func (f *Forge) Project() forge.RemoteProject {
	if f.GitHub != nil {
		return f.GitHub.Projects
	}
	return f.GitLab.Projects
}

func (f *Forge) Member() forge.ProjectMember {
	if f.GitHub != nil {
		return f.GitHub.Members
	}
	return f.GitLab.Members
}

func (f *Forge) User() forge.UserInfo {
	if f.GitHub != nil {
		return f.GitHub.Users
	}
	return f.GitLab.Users
}

func (f *Forge) Cicd() forge.Cicd {
	if f.GitHub != nil {
		return f.GitHub.Pipelines
	}
	return f.GitLab.Pipelines
}

func (f *Forge) CicdRunner() forge.CicdRunner {
	if f.GitHub != nil {
		return f.GitHub.Runners
	}
	return f.GitLab.Runners
}

func (f *Forge) CicdJob() forge.CicdJob {
	if f.GitHub != nil {
		return f.GitHub.Jobs
	}
	return f.GitLab.Jobs
}

func (f *Forge) Deploy() forge.Deploy {
	if f.GitHub != nil {
		return f.GitHub.Releases
	}
	return f.GitLab.Releases
}

func (f *Forge) DeployAsset() forge.DeployAsset {
	if f.GitHub != nil {
		return f.GitHub.Assets
	}
	return f.GitLab.Assets
}

func (f *Forge) ContainerRegistry() forge.ContainerRegistry {
	if f.GitHub != nil {
		return f.GitHub.Registry
	}
	return f.GitLab.Registry
}

func (f *Forge) CommentMergeRequest() forge.CommentMergeRequest {
	if f.GitHub != nil {
		return f.GitHub.Comments
	}
	return f.GitLab.Comments
}

func (f *Forge) CodeGist() forge.CodeGist {
	if f.GitHub != nil {
		return f.GitHub.Gists
	}
	return f.GitLab.Gists
}

func (f *Forge) RemoteTag() forge.RemoteTag {
	if f.GitHub != nil {
		return f.GitHub.Tags
	}
	return f.GitLab.Tags
}

// TrendingProjectURL is GitHub-only; GitLab has no such endpoint, so
// this returns nil when the resolved provider is GitLab. Callers must
// check for nil before dispatching, surfacing an OperationNotSupported
// error at the CLI layer rather than panicking.
func (f *Forge) TrendingProjectURL() forge.TrendingProjectURL {
	if f.GitHub != nil {
		return f.GitHub.Trending
	}
	return nil
}

// New builds a Forge for (domain, path) using cfg's resolved cache
// location and per-operation TTLs/page caps, per the prefix-match rule:
// a domain starting with "github" resolves to the GitHub adapter, one
// starting with "gitlab" to the GitLab adapter, anything else is an
// unsupported-domain error.
func New(url RemoteURL, cfg *config.Config, cacheType CacheType, clock xtime.Clock, log *logrus.Entry) (*Forge, error) {
	var provider string
	switch {
	case githubPrefix.MatchString(url.Domain):
		provider = "github"
	case gitlabPrefix.MatchString(url.Domain):
		provider = "gitlab"
	default:
		return nil, &errorsx.ApplicationError{Msg: "unsupported domain: " + url.Domain}
	}

	var c cache.Cache
	if cacheType == CacheNone || cfg.CacheLocation == "" {
		c = cache.NoCache{}
	} else {
		fc, err := cache.NewFileCache(cfg.CacheLocation, cfg.CacheExpiration, clock, log)
		if err != nil {
			return nil, err
		}
		c = fc
	}

	var transport http.RoundTripper
	if provider == "github" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken})
		transport = oauth2.NewClient(context.Background(), src).Transport
	}

	maxPages := httpapi.MaxPagesLookup(cfg.MaxPages)
	httpClient := httpapi.NewClient(c, cfg.RateLimitThreshold, maxPages, clock, log, provider, transport)
	backoff := httpapi.NewBackoff(httpClient, 3, clock, log, provider)
	throttle := httpapi.NewFixedThrottle(0, clock)

	if provider == "github" {
		client := github.NewClient(cfg.APIToken, url.Domain, url.Path, backoff, throttle, log)
		return &Forge{GitHub: github.NewForge(client)}, nil
	}
	client := gitlab.NewClient(cfg.APIToken, url.Domain, url.Path, backoff, throttle, log)
	return &Forge{GitLab: gitlab.NewForge(client)}, nil
}
