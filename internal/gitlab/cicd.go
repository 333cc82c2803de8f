package gitlab

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
	"github.com/forgectl/forgectl/internal/xtime"
)

// Pipelines adapts Client onto forge.Cicd.
type Pipelines struct{ *Client }

func (p Pipelines) List(args forge.ListBodyArgs) ([]forge.Pipeline, error) {
	c := p.Client
	url := c.restAPIBasepath + "/pipelines"
	return query.Paged(c.exec, url, forge.PipelineOp, c.headers(), listMaxPages(args), c.throttle, mapPipelineRows, nil)
}

// GetPipeline has no wired mapping; pipeline runs are only consumed
// through List.
func (p Pipelines) GetPipeline(int64) (forge.Pipeline, error) {
	return forge.Pipeline{}, &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "get_pipeline"}
}

func (p Pipelines) NumPages(forge.ListBodyArgs) (*int, error) {
	c := p.Client
	url := c.restAPIBasepath + "/pipelines?page=1"
	return query.NumPages(c.exec, url, forge.PipelineOp, c.headers())
}

func (p Pipelines) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := p.Client
	url := c.restAPIBasepath + "/pipelines?page=1"
	return query.NumResources(c.exec, url, forge.PipelineOp, c.headers(), c.perPage)
}

// Lint hits the CI lint endpoint GitHub Actions has no equivalent of.
func (p Pipelines) Lint(yaml []byte) (forge.LintResult, error) {
	c := p.Client
	url := fmt.Sprintf("https://%s/api/v4/projects/%s/ci/lint", c.domain, c.encodedPath)
	body := map[string]string{"content": string(yaml)}
	out, _, err := query.Send(c.exec, httpapi.MethodPost, url, &body, forge.PipelineOp, c.headers(), []int{200, 201}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.LintResult{}, err
	}
	var fields struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
		Merged *string  `json:"merged_yaml"`
	}
	if err := json.Unmarshal(out, &fields); err != nil {
		return forge.LintResult{}, err
	}
	return forge.LintResult{Valid: fields.Valid, Errors: fields.Errors, Merged: fields.Merged}, nil
}

func mapPipelineRows(body []byte) ([]forge.Pipeline, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Pipeline, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			ID        int64  `json:"id"`
			Status    string `json:"status"`
			WebURL    string `json:"web_url"`
			Ref       string `json:"ref"`
			SHA       string `json:"sha"`
			CreatedAt string `json:"created_at"`
			UpdatedAt string `json:"updated_at"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.Pipeline{
			ID:        fields.ID,
			Status:    fields.Status,
			WebURL:    fields.WebURL,
			Branch:    fields.Ref,
			SHA:       fields.SHA,
			CreatedAt: fields.CreatedAt,
			UpdatedAt: fields.UpdatedAt,
			Duration:  xtime.ComputeDuration(fields.CreatedAt, fields.UpdatedAt),
		})
	}
	return out, nil
}

// Runners adapts Client onto forge.CicdRunner. GitLab has a real runners
// API, listed against the current project and looked up globally by id.
type Runners struct{ *Client }

func (r Runners) listRunnersURL(args forge.ListBodyArgs, numPages bool) string {
	c := r.Client
	url := fmt.Sprintf("%s/runners?status=online", c.restAPIBasepath)
	if numPages {
		url += "&page=1"
	}
	return url
}

func (r Runners) List(args forge.ListBodyArgs) ([]forge.Runner, error) {
	c := r.Client
	url := r.listRunnersURL(args, false)
	return query.Paged(c.exec, url, forge.PipelineOp, c.headers(), listMaxPages(args), c.throttle, mapRunnerRows, nil)
}

func (r Runners) Get(id int64) (forge.RunnerMetadata, error) {
	c := r.Client
	url := fmt.Sprintf("%s/%d", c.baseRunnerURL, id)
	out, err := query.Get(c.exec, url, forge.PipelineOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.RunnerMetadata{}, err
	}
	return mapRunnerMetadata(out)
}

func (r Runners) Create(args forge.RunnerRegisterArgs) (string, error) {
	c := r.Client
	url := c.restAPIBasepath + "/runners"
	body := map[string]interface{}{
		"description":  args.Description,
		"tag_list":     args.Tags,
		"run_untagged": args.RunUntagged,
	}
	out, _, err := query.Send(c.exec, httpapi.MethodPost, url, &body, forge.PipelineOp, c.headers(), []int{201}, decodeJSON[json.RawMessage])
	if err != nil {
		return "", err
	}
	var fields struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(out, &fields); err != nil {
		return "", err
	}
	return fields.Token, nil
}

func (r Runners) NumPages(args forge.ListBodyArgs) (*int, error) {
	c := r.Client
	url := r.listRunnersURL(args, true)
	return query.NumPages(c.exec, url, forge.PipelineOp, c.headers())
}

func (r Runners) NumResources(args forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := r.Client
	url := r.listRunnersURL(args, true)
	return query.NumResources(c.exec, url, forge.PipelineOp, c.headers(), c.perPage)
}

func mapRunnerRows(body []byte) ([]forge.Runner, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Runner, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			ID          int64  `json:"id"`
			Description string `json:"description"`
			IPAddress   string `json:"ip_address"`
			Active      bool   `json:"active"`
			Paused      bool   `json:"paused"`
			IsShared    bool   `json:"is_shared"`
			RunnerType  string `json:"runner_type"`
			Name        string `json:"name"`
			Online      bool   `json:"online"`
			Status      string `json:"status"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.Runner{
			ID:          fields.ID,
			Description: fields.Description,
			IPAddress:   fields.IPAddress,
			Active:      fields.Active,
			Paused:      fields.Paused,
			IsShared:    fields.IsShared,
			RunnerType:  fields.RunnerType,
			Name:        fields.Name,
			Online:      fields.Online,
			Status:      fields.Status,
		})
	}
	return out, nil
}

func mapRunnerMetadata(raw json.RawMessage) (forge.RunnerMetadata, error) {
	var fields struct {
		ID          int64    `json:"id"`
		RunUntagged bool     `json:"run_untagged"`
		TagList     []string `json:"tag_list"`
		Version     string   `json:"version"`
		Arch        string   `json:"architecture"`
		Platform    string   `json:"platform"`
		ContactedAt string   `json:"contacted_at"`
		Revision    string   `json:"revision"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.RunnerMetadata{}, err
	}
	return forge.RunnerMetadata{
		ID:           fields.ID,
		RunUntagged:  fields.RunUntagged,
		TagList:      fields.TagList,
		Version:      fields.Version,
		Architecture: fields.Arch,
		Platform:     fields.Platform,
		ContactedAt:  fields.ContactedAt,
		Revision:     fields.Revision,
	}, nil
}

// Jobs adapts Client onto forge.CicdJob. No job-listing endpoint is
// wired up on the GitLab side either, matching the same gap on GitHub.
type Jobs struct{ *Client }

func (j Jobs) List(int64, forge.ListBodyArgs) ([]forge.Job, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "list_jobs"}
}

func (j Jobs) NumPages(int64, forge.ListBodyArgs) (*int, error) { return nil, nil }

func (j Jobs) NumResources(int64, forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	return nil, nil
}

// Registry adapts Client onto forge.ContainerRegistry.
type Registry struct{ *Client }

func (r Registry) ListRepositories(args forge.ListBodyArgs) ([]forge.RegistryRepository, error) {
	c := r.Client
	url := c.restAPIBasepath + "/registry/repositories"
	return query.Paged(c.exec, url, forge.ContainerRegistryOp, c.headers(), listMaxPages(args), c.throttle, mapRegistryRepositoryRows, nil)
}

// ListTags hits the per-repository tags endpoint, a plausible extension
// beyond repository listing.
func (r Registry) ListTags(repositoryID int64, args forge.ListBodyArgs) ([]forge.RepositoryTag, error) {
	c := r.Client
	url := fmt.Sprintf("%s/registry/repositories/%d/tags", c.restAPIBasepath, repositoryID)
	return query.Paged(c.exec, url, forge.ContainerRegistryOp, c.headers(), listMaxPages(args), c.throttle, mapRegistryTagRows, nil)
}

func (r Registry) GetImageMetadata(repositoryID int64, tag string) (forge.ImageMetadata, error) {
	c := r.Client
	url := fmt.Sprintf("%s/registry/repositories/%d/tags/%s", c.restAPIBasepath, repositoryID, tag)
	out, err := query.Get(c.exec, url, forge.ContainerRegistryOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.ImageMetadata{}, err
	}
	var fields struct {
		Name      string `json:"name"`
		Location  string `json:"location"`
		ShortSHA  string `json:"short_revision"`
		Size      int64  `json:"total_size"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(out, &fields); err != nil {
		return forge.ImageMetadata{}, err
	}
	return forge.ImageMetadata{Name: fields.Name, Location: fields.Location, ShortSHA: fields.ShortSHA, Size: fields.Size, CreatedAt: fields.CreatedAt}, nil
}

func (r Registry) NumPages(forge.ListBodyArgs) (*int, error) {
	c := r.Client
	url := c.restAPIBasepath + "/registry/repositories?page=1"
	return query.NumPages(c.exec, url, forge.ContainerRegistryOp, c.headers())
}

func (r Registry) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := r.Client
	url := c.restAPIBasepath + "/registry/repositories?page=1"
	return query.NumResources(c.exec, url, forge.ContainerRegistryOp, c.headers(), c.perPage)
}

func mapRegistryRepositoryRows(body []byte) ([]forge.RegistryRepository, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.RegistryRepository, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			ID        int64  `json:"id"`
			Location  string `json:"location"`
			TagsCount int64  `json:"tags_count"`
			CreatedAt string `json:"created_at"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.RegistryRepository{ID: fields.ID, Location: fields.Location, TagsCount: fields.TagsCount, CreatedAt: fields.CreatedAt})
	}
	return out, nil
}

func mapRegistryTagRows(body []byte) ([]forge.RepositoryTag, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.RepositoryTag, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			Name     string `json:"name"`
			Path     string `json:"path"`
			Location string `json:"location"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.RepositoryTag{Name: fields.Name, Path: fields.Path, Location: fields.Location})
	}
	return out, nil
}
