package github

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
	"github.com/forgectl/forgectl/internal/xtime"
)

// Pipelines adapts Client onto forge.Cicd.
type Pipelines struct{ *Client }

func (p Pipelines) List(args forge.ListBodyArgs) ([]forge.Pipeline, error) {
	c := p.Client
	url := fmt.Sprintf("%s/repos/%s/actions/runs", c.basePath, c.path)
	return query.Paged(c.exec, url, forge.PipelineOp, c.headers(), listMaxPages(args), c.throttle, mapWorkflowRuns, nil)
}

// GetPipeline has no direct "get one workflow run" mapping wired up
// today; runs are only consumed through List.
func (p Pipelines) GetPipeline(int64) (forge.Pipeline, error) {
	return forge.Pipeline{}, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "get_pipeline"}
}

func (p Pipelines) NumPages(forge.ListBodyArgs) (*int, error) {
	c := p.Client
	url := fmt.Sprintf("%s/repos/%s/actions/runs?page=1", c.basePath, c.path)
	return query.NumPages(c.exec, url, forge.PipelineOp, c.headers())
}

func (p Pipelines) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := p.Client
	url := fmt.Sprintf("%s/repos/%s/actions/runs?page=1", c.basePath, c.path)
	return query.NumResources(c.exec, url, forge.PipelineOp, c.headers(), c.perPage)
}

// Lint has no GitHub Actions equivalent of GitLab's CI lint endpoint.
func (p Pipelines) Lint([]byte) (forge.LintResult, error) {
	return forge.LintResult{}, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "lint"}
}

func mapWorkflowRuns(body []byte) ([]forge.Pipeline, error) {
	var wrapper struct {
		WorkflowRuns []json.RawMessage `json:"workflow_runs"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	out := make([]forge.Pipeline, 0, len(wrapper.WorkflowRuns))
	for _, raw := range wrapper.WorkflowRuns {
		var fields struct {
			ID         int64  `json:"id"`
			Status     string `json:"status"`
			Conclusion string `json:"conclusion"`
			HTMLURL    string `json:"html_url"`
			HeadBranch string `json:"head_branch"`
			HeadSHA    string `json:"head_sha"`
			CreatedAt  string `json:"created_at"`
			UpdatedAt  string `json:"updated_at"`
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		// conclusion is the final state; status is only meaningful while
		// the run is in flight, so conclusion wins when present.
		status := fields.Conclusion
		if status == "" {
			status = fields.Status
		}
		if status == "" {
			status = "unknown"
		}
		out = append(out, forge.Pipeline{
			ID:        fields.ID,
			Status:    status,
			WebURL:    fields.HTMLURL,
			Branch:    fields.HeadBranch,
			SHA:       fields.HeadSHA,
			CreatedAt: fields.CreatedAt,
			UpdatedAt: fields.UpdatedAt,
			Duration:  xtime.ComputeDuration(fields.CreatedAt, fields.UpdatedAt),
		})
	}
	return out, nil
}

// Runners, Jobs, and the container registry have no workflow-runs-style
// REST mapping wired up on GitHub in this client: their list, get and
// create methods report unsupported, and their NumPages/NumResources
// return nil with no error.

// Runners adapts Client onto forge.CicdRunner.
type Runners struct{ *Client }

func (r Runners) List(forge.ListBodyArgs) ([]forge.Runner, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "list_runners"}
}

func (r Runners) Get(int64) (forge.RunnerMetadata, error) {
	return forge.RunnerMetadata{}, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "get_runner"}
}

func (r Runners) Create(forge.RunnerRegisterArgs) (string, error) {
	return "", &errorsx.OperationNotSupportedError{Provider: "github", Operation: "create_runner"}
}

func (r Runners) NumPages(forge.ListBodyArgs) (*int, error) { return nil, nil }

func (r Runners) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) { return nil, nil }

// Jobs adapts Client onto forge.CicdJob.
type Jobs struct{ *Client }

func (j Jobs) List(int64, forge.ListBodyArgs) ([]forge.Job, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "list_jobs"}
}

func (j Jobs) NumPages(int64, forge.ListBodyArgs) (*int, error) { return nil, nil }

func (j Jobs) NumResources(int64, forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	return nil, nil
}

// Registry adapts Client onto forge.ContainerRegistry. The GitHub
// Packages API has a materially different resource model (package
// versions, not per-repository tags), which the distilled client this
// is grounded on also left unimplemented.
type Registry struct{ *Client }

func (r Registry) ListRepositories(forge.ListBodyArgs) ([]forge.RegistryRepository, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "list_repositories"}
}

func (r Registry) ListTags(int64, forge.ListBodyArgs) ([]forge.RepositoryTag, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "list_tags"}
}

func (r Registry) GetImageMetadata(int64, string) (forge.ImageMetadata, error) {
	return forge.ImageMetadata{}, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "get_image_metadata"}
}

func (r Registry) NumPages(forge.ListBodyArgs) (*int, error) { return nil, nil }

func (r Registry) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) { return nil, nil }
