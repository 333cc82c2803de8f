// Package gitlab adapts the provider-agnostic capability interfaces in
// internal/forge onto the GitLab REST v4 API. Field mappers - the only
// place GitLab's JSON keys are hard-coded - live one per resource
// family, next to the capability method that uses them. GitLab has no
// trending-projects endpoint, so unlike internal/github this package
// does not implement forge.TrendingProjectURL at all.
package gitlab

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
)

// Client is the GitLab provider adapter.
type Client struct {
	token             string
	domain            string
	path              string
	encodedPath       string
	restAPIBasepath   string
	baseProjectURL    string
	baseUserURL       string
	mergeRequestsURL  string
	baseRunnerURL     string
	exec              query.Executor
	throttle          httpapi.ThrottleStrategy
	perPage           int
	log               *logrus.Entry
}

// urlEncodePath turns a project path into GitLab's URL-encoded project
// id by replacing every "/" with "%2F".
func urlEncodePath(path string) string {
	return strings.ReplaceAll(path, "/", "%2F")
}

// NewClient builds a GitLab adapter for (domain, path), issuing
// requests through exec (typically a Backoff wrapping a Client).
func NewClient(token, domain, path string, exec query.Executor, throttle httpapi.ThrottleStrategy, log *logrus.Entry) *Client {
	encodedPath := urlEncodePath(path)
	baseProjectURL := fmt.Sprintf("https://%s/api/v4/projects", domain)
	return &Client{
		token:            token,
		domain:           domain,
		path:             path,
		encodedPath:      encodedPath,
		restAPIBasepath:  baseProjectURL + "/" + encodedPath,
		baseProjectURL:   baseProjectURL,
		baseUserURL:      fmt.Sprintf("https://%s/api/v4/user", domain),
		mergeRequestsURL: fmt.Sprintf("https://%s/api/v4/merge_requests", domain),
		baseRunnerURL:    fmt.Sprintf("https://%s/api/v4/runners", domain),
		exec:             exec,
		throttle:         throttle,
		perPage:          query.DefaultPerPage,
		log:              log.WithField("provider", "gitlab"),
	}
}

func (c *Client) headers() httpapi.Headers {
	h := httpapi.Headers{}
	h.Set("PRIVATE-TOKEN", c.token)
	return h
}

func (c *Client) getProjectURL(opt forge.BrowseOption) (string, error) {
	base := fmt.Sprintf("https://%s/%s", c.domain, c.path)
	switch opt.Target {
	case forge.BrowseRepo:
		return base, nil
	case forge.BrowsePipelines:
		return base + "/pipelines", nil
	case forge.BrowseMergeRequests:
		return base + "/-/merge_requests", nil
	case forge.BrowseMergeRequest:
		return fmt.Sprintf("%s/-/merge_requests/%d", base, opt.ID), nil
	case forge.BrowseReleases:
		return base + "/-/releases", nil
	default:
		return "", &errorsx.ApplicationError{Msg: "unknown browse target"}
	}
}

func decodeJSON[T any](body []byte) (T, error) {
	var out T
	err := json.Unmarshal(body, &out)
	return out, err
}

func listMaxPages(args forge.ListBodyArgs) *int {
	if args.MaxPages == 0 {
		return nil
	}
	n := args.MaxPages
	return &n
}

// Forge bundles every capability handle GitLab supports behind the
// single *Client they share.
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
}

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
	}
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
)
