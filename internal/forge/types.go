// Package forge declares the provider-agnostic capability interfaces and
// the domain record types every provider adapter maps its JSON responses
// onto. It is deliberately free of any HTTP or JSON-shape knowledge:
// adapters call into internal/query, which calls into internal/httpapi,
// keeping the would-be adapter/client/query cycle open.
package forge

import (
	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/query"
)

// ApiOperation classifies a request for per-operation cache TTL and
// max-pages lookups. It is an alias for cache.ApiOperation: the cache key
// and the HTTP request model both need this type, and neither package
// may import forge without a cycle, so cache is where it is declared.
type ApiOperation = cache.ApiOperation

const (
	MergeRequestOp      = cache.MergeRequest
	PipelineOp          = cache.Pipeline
	ProjectOp           = cache.Project
	ContainerRegistryOp = cache.ContainerRegistry
	ReleaseOp           = cache.Release
	SinglePageOp        = cache.SinglePage
	GistOp              = cache.Gist
	RepositoryTagOp     = cache.RepositoryTag
)

// NumberDeltaErr is an alias for query.NumberDeltaErr: it is computed by
// the query layer's num_resources helper and rendered by callers here.
type NumberDeltaErr = query.NumberDeltaErr

// ListBodyArgs is the pagination shape every list-capable method accepts.
type ListBodyArgs struct {
	Page           int
	MaxPages       int
	PageNumber     int // if set, MaxPages is forced to 1
	CreatedAfter   string
	CreatedBefore  string
	Sort           SortOrder
	Flush          bool
	ThrottleTime   int // milliseconds
	ThrottleRange  [2]int
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Validate enforces the ListBodyArgs invariants: from_page <= to_page,
// both non-negative, and page_number implies a single page.
func (a *ListBodyArgs) Validate() error {
	if a.Page < 0 || a.MaxPages < 0 {
		return &errorsx.PreconditionNotMetError{Msg: "page and max_pages must be non-negative"}
	}
	if a.MaxPages != 0 && a.Page > a.MaxPages {
		return &errorsx.PreconditionNotMetError{Msg: "from_page must not exceed to_page"}
	}
	if a.PageNumber != 0 {
		a.MaxPages = 1
	}
	return nil
}

// MergeRequestResponse is the immutable record every merge/pull request
// operation returns.
type MergeRequestResponse struct {
	ID           int64
	WebURL       string
	Author       string
	Description  string
	SourceBranch string
	TargetBranch string
	State        string
	CreatedAt    string
	UpdatedAt    string
}

// Pipeline is a single CI/CD pipeline run.
type Pipeline struct {
	ID        int64
	Status    string
	WebURL    string
	Branch    string
	SHA       string
	CreatedAt string
	UpdatedAt string
	Duration  int64
}

// LintResult is the response of a CI/CD lint call; Merged is the
// provider-merged YAML, present only when the provider returns one.
type LintResult struct {
	Valid   bool
	Errors  []string
	Merged  *string
}

// Runner is a CI/CD runner registered against a project or the instance.
type Runner struct {
	ID          int64
	Active      bool
	Description string
	IPAddress   string
	Name        string
	Online      bool
	Paused      bool
	IsShared    bool
	RunnerType  string
	Status      string
}

// RunnerMetadata is the detail view of a single runner.
type RunnerMetadata struct {
	ID           int64
	RunUntagged  bool
	TagList      []string
	Version      string
	Architecture string
	Platform     string
	ContactedAt  string
	Revision     string
}

// RunnerRegisterArgs requests a new runner registration token.
type RunnerRegisterArgs struct {
	Description string
	Tags        []string
	RunUntagged bool
}

// Job is a single CI/CD job within a pipeline.
type Job struct {
	ID         int64
	Name       string
	Branch     string
	AuthorName string
	CommitSHA  string
	PipelineID int64
	RunnerTags []string
	Stage      string
	Status     string
	CreatedAt  string
	StartedAt  string
	FinishedAt string
	Duration   int64
}

// Release is a tagged release/deployment.
type Release struct {
	ID          string
	URL         string
	Tag         string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ReleaseAsset is a single downloadable artifact attached to a Release.
type ReleaseAsset struct {
	Name string
	URL  string
	Size int64
}

// Project is a remote repository.
type Project struct {
	ID            int64
	DefaultBranch string
	HTMLURL       string
	CreatedAt     string
	Description   string
	// Language is not available on every provider; empty string when
	// the provider has no equivalent field.
	Language string
}

// Member is a project member or, when returned from UserInfo, the
// authenticated user.
type Member struct {
	ID        int64
	Name      string
	Username  string
	CreatedAt string
}

// RegistryRepository is a container registry repository within a
// project.
type RegistryRepository struct {
	ID        int64
	Location  string
	TagsCount int64
	CreatedAt string
}

// RepositoryTag is shared by container-registry tag listings and plain
// git repository tag listings; Location is empty for the latter.
type RepositoryTag struct {
	Name      string
	Path      string
	Location  string
	CreatedAt string
}

// ImageMetadata is the per-tag detail view of a container image.
type ImageMetadata struct {
	Name      string
	Location  string
	ShortSHA  string
	Size      int64
	CreatedAt string
}

// Gist is a code snippet/paste.
type Gist struct {
	URL         string
	Description string
	Files       string
	CreatedAt   string
}

// Comment is a single comment on a merge/pull request.
type Comment struct {
	ID        int64
	Body      string
	Author    string
	CreatedAt string
}

// TrendingProject is one row of a trending-projects listing.
type TrendingProject struct {
	URL         string
	Description string
}

