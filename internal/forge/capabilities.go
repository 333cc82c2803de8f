package forge

// OpenMergeRequestArgs carries everything a provider needs to open a
// merge/pull request. Title/description/draft/target selection come
// from the CLI layer (out of scope here); TargetRepo/TargetBranch are
// optional cross-repo overrides.
type OpenMergeRequestArgs struct {
	Title           string
	Description     string
	SourceBranch    string
	TargetBranch    string
	TargetRepo      string
	Draft           bool
	Assignee        string
	Amend           bool
}

// MergeRequestListArgs filters a merge/pull request list by exactly one
// of Assignee/Reviewer/Author, plus the usual pagination shape.
type MergeRequestListArgs struct {
	ListBodyArgs
	State    string
	Assignee string
	Reviewer string
	Author   string
}

// MergeRequest is the capability contract for merge/pull requests.
type MergeRequest interface {
	Open(args OpenMergeRequestArgs) (MergeRequestResponse, error)
	List(args MergeRequestListArgs) ([]MergeRequestResponse, error)
	Get(id int64) (MergeRequestResponse, error)
	Merge(id int64) (MergeRequestResponse, error)
	Close(id int64) (MergeRequestResponse, error)
	Approve(id int64) (MergeRequestResponse, error)
	NumPages(args MergeRequestListArgs) (*int, error)
	NumResources(args MergeRequestListArgs) (*NumberDeltaErr, error)
}

// Cicd is the capability contract for pipelines.
type Cicd interface {
	List(args ListBodyArgs) ([]Pipeline, error)
	GetPipeline(id int64) (Pipeline, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
	Lint(yaml []byte) (LintResult, error)
}

// CicdRunner is the capability contract for CI/CD runners.
type CicdRunner interface {
	List(args ListBodyArgs) ([]Runner, error)
	Get(id int64) (RunnerMetadata, error)
	Create(args RunnerRegisterArgs) (string, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
}

// CicdJob is the capability contract for the jobs within one pipeline.
type CicdJob interface {
	List(pipelineID int64, args ListBodyArgs) ([]Job, error)
	NumPages(pipelineID int64, args ListBodyArgs) (*int, error)
	NumResources(pipelineID int64, args ListBodyArgs) (*NumberDeltaErr, error)
}

// Deploy is the capability contract for releases.
type Deploy interface {
	List(args ListBodyArgs) ([]Release, error)
	Get(id string) (Release, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
}

// DeployAsset is the capability contract for assets attached to a
// release.
type DeployAsset interface {
	List(releaseID string, args ListBodyArgs) ([]ReleaseAsset, error)
	NumPages(releaseID string, args ListBodyArgs) (*int, error)
	NumResources(releaseID string, args ListBodyArgs) (*NumberDeltaErr, error)
}

// ContainerRegistry is the capability contract for the container
// registry: repositories, their tags, and per-tag image metadata.
type ContainerRegistry interface {
	ListRepositories(args ListBodyArgs) ([]RegistryRepository, error)
	ListTags(repositoryID int64, args ListBodyArgs) ([]RepositoryTag, error)
	GetImageMetadata(repositoryID int64, tag string) (ImageMetadata, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
}

// CommentMergeRequest is the capability contract for merge/pull request
// comments.
type CommentMergeRequest interface {
	List(mergeRequestID int64, args ListBodyArgs) ([]Comment, error)
	Create(mergeRequestID int64, body string) (Comment, error)
}

// CodeGist is the capability contract for gists/snippets.
type CodeGist interface {
	List(args ListBodyArgs) ([]Gist, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
}

// BrowseTarget selects which part of a project GetURL resolves.
type BrowseTarget int

const (
	BrowseRepo BrowseTarget = iota
	BrowsePipelines
	BrowseMergeRequests
	BrowseMergeRequest
	BrowseReleases
)

// BrowseOption parametrizes RemoteProject.GetURL; ID is only consulted
// for BrowseMergeRequest.
type BrowseOption struct {
	Target BrowseTarget
	ID     int64
}

// RemoteProject is the capability contract for project metadata and the
// pure, no-I/O browse-URL builder every adapter must implement.
type RemoteProject interface {
	Get(id int64) (Project, error)
	GetIDByPath(path string) (int64, error)
	GetURL(opt BrowseOption) (string, error)
}

// ProjectMember is the capability contract for project membership
// listings.
type ProjectMember interface {
	List(projectID int64, args ListBodyArgs) ([]Member, error)
}

// RemoteTag is the capability contract for plain git repository tags
// (distinct from container-registry tags).
type RemoteTag interface {
	List(args ListBodyArgs) ([]RepositoryTag, error)
	NumPages(args ListBodyArgs) (*int, error)
	NumResources(args ListBodyArgs) (*NumberDeltaErr, error)
}

// UserInfo is the capability contract for the authenticated user.
type UserInfo interface {
	Get() (Member, error)
}

// TrendingProjectURL is the capability contract for trending-project
// listings. GitLab has no such endpoint; its client does not implement
// this interface, the remote Forge's TrendingProjectURL accessor returns
// nil for GitLab, and the CLI's trending command reports
// OperationNotSupported in that case.
type TrendingProjectURL interface {
	List(language string) ([]TrendingProject, error)
}
