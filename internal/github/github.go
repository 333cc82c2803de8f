// Package github adapts the provider-agnostic capability interfaces in
// internal/forge onto the GitHub REST v3 API. Field mappers - the only
// place GitHub's JSON keys are hard-coded - live one per resource family,
// next to the capability method that uses them.
package github

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
)

// Client is the GitHub provider adapter. It implements the subset of
// internal/forge capability interfaces GitHub's REST API supports.
type Client struct {
	token    string
	domain   string
	path     string
	basePath string
	exec     query.Executor
	throttle httpapi.ThrottleStrategy
	perPage  int
	log      *logrus.Entry
}

// NewClient builds a GitHub adapter for (domain, path), issuing requests
// through exec (typically a Backoff wrapping a Client).
func NewClient(token, domain, path string, exec query.Executor, throttle httpapi.ThrottleStrategy, log *logrus.Entry) *Client {
	return &Client{
		token:    token,
		domain:   domain,
		path:     path,
		basePath: fmt.Sprintf("https://api.%s", domain),
		exec:     exec,
		throttle: throttle,
		perPage:  query.DefaultPerPage,
		log:      log.WithField("provider", "github"),
	}
}

// headers sets only Accept: authentication is injected transport-side by
// an oauth2.Transport wrapping the shared http.Client, not set here.
func (c *Client) headers() httpapi.Headers {
	h := httpapi.Headers{}
	h.Set("Accept", "application/vnd.github.v3+json")
	return h
}

// getProjectURL is the pure, no-I/O implementation behind
// Projects.GetURL.
func (c *Client) getProjectURL(opt forge.BrowseOption) (string, error) {
	base := fmt.Sprintf("https://%s/%s", c.domain, c.path)
	switch opt.Target {
	case forge.BrowseRepo:
		return base, nil
	case forge.BrowsePipelines:
		return base + "/actions", nil
	case forge.BrowseMergeRequests:
		return base + "/pulls", nil
	case forge.BrowseMergeRequest:
		return fmt.Sprintf("%s/pull/%d", base, opt.ID), nil
	case forge.BrowseReleases:
		return base + "/releases", nil
	default:
		return "", &errorsx.ApplicationError{Msg: "unknown browse target"}
	}
}

func decodeJSON[T any](body []byte) (T, error) {
	var out T
	err := json.Unmarshal(body, &out)
	return out, err
}

// Forge bundles every capability handle GitHub supports behind the
// single *Client they share. The remote factory type-asserts the
// capability it needs off whichever field the caller's command
// dispatches to.
type Forge struct {
	MergeRequests MergeRequests
	Projects      Projects
	Members       Members
	Users         Users
	Pipelines     Pipelines
	Runners       Runners
	Jobs          Jobs
	Releases      Releases
	Assets        Assets
	Registry      Registry
	Comments      Comments
	Gists         Gists
	Tags          Tags
	Trending      Trending
}

var (
	_ forge.MergeRequest        = MergeRequests{}
	_ forge.RemoteProject       = Projects{}
	_ forge.ProjectMember       = Members{}
	_ forge.UserInfo            = Users{}
	_ forge.Cicd                = Pipelines{}
	_ forge.CicdRunner          = Runners{}
	_ forge.CicdJob             = Jobs{}
	_ forge.Deploy              = Releases{}
	_ forge.DeployAsset         = Assets{}
	_ forge.ContainerRegistry   = Registry{}
	_ forge.CommentMergeRequest = Comments{}
	_ forge.CodeGist            = Gists{}
	_ forge.RemoteTag           = Tags{}
	_ forge.TrendingProjectURL  = Trending{}
)

// NewForge wraps a *Client into the capability bundle above.
func NewForge(c *Client) *Forge {
	return &Forge{
		MergeRequests: MergeRequests{c},
		Projects:      Projects{c},
		Members:       Members{c},
		Users:         Users{c},
		Pipelines:     Pipelines{c},
		Runners:       Runners{c},
		Jobs:          Jobs{c},
		Releases:      Releases{c},
		Assets:        Assets{c},
		Registry:      Registry{c},
		Comments:      Comments{c},
		Gists:         Gists{c},
		Tags:          Tags{c},
		Trending:      Trending{c},
	}
}

var trendingProjectRe = regexp.MustCompile(`href="/[a-zA-Z0-9_-]*/[a-zA-Z0-9_-]*/stargazers"`)

// Trending adapts Client onto forge.TrendingProjectURL.
type Trending struct{ *Client }

// List implements forge.TrendingProjectURL by scraping github.com's
// trending HTML page; GitHub has no REST endpoint for this.
func (t Trending) List(language string) ([]forge.TrendingProject, error) {
	c := t.Client
	url := fmt.Sprintf("https://%s/trending/%s", c.domain, language)
	headers := httpapi.Headers{}
	headers.Set("Accept", "text/html")
	body, err := query.Get(c.exec, url, forge.SinglePageOp, headers, func(b []byte) (string, error) {
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	return parseTrendingHTML(body, c.domain), nil
}

func parseTrendingHTML(body, domain string) []forge.TrendingProject {
	var out []forge.TrendingProject
	for _, m := range trendingProjectRe.FindAllString(body, -1) {
		parts := strings.Split(m, "\"")
		if len(parts) < 2 {
			continue
		}
		segments := strings.Split(parts[1], "/")
		if len(segments) < 3 {
			continue
		}
		owner, repo := segments[1], segments[2]
		if owner == "features" || owner == "about" || owner == "site" {
			continue
		}
		out = append(out, forge.TrendingProject{URL: fmt.Sprintf("https://%s/%s/%s", domain, owner, repo)})
	}
	return out
}
