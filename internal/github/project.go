package github

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Projects adapts Client onto forge.RemoteProject.
type Projects struct{ *Client }

// Get implements forge.RemoteProject for GitHub. GitHub has no "get
// repository by numeric id" REST endpoint in common use, so id is
// ignored: the adapter's own project is always "this" repo.
func (p Projects) Get(id int64) (forge.Project, error) {
	c := p.Client
	url := fmt.Sprintf("%s/repos/%s", c.basePath, c.path)
	return query.Get(c.exec, url, forge.ProjectOp, c.headers(), mapProject)
}

func (p Projects) GetIDByPath(path string) (int64, error) {
	c := p.Client
	url := fmt.Sprintf("%s/repos/%s", c.basePath, path)
	proj, err := query.Get(c.exec, url, forge.ProjectOp, c.headers(), mapProject)
	if err != nil {
		return 0, err
	}
	return proj.ID, nil
}

func (p Projects) GetURL(opt forge.BrowseOption) (string, error) { return p.Client.getProjectURL(opt) }

func mapProject(body []byte) (forge.Project, error) {
	var fields struct {
		ID            int64  `json:"id"`
		DefaultBranch string `json:"default_branch"`
		HTMLURL       string `json:"html_url"`
		CreatedAt     string `json:"created_at"`
		Description   string `json:"description"`
		Language      string `json:"language"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return forge.Project{}, err
	}
	return forge.Project{
		ID:            fields.ID,
		DefaultBranch: fields.DefaultBranch,
		HTMLURL:       fields.HTMLURL,
		CreatedAt:     fields.CreatedAt,
		Description:   fields.Description,
		Language:      fields.Language,
	}, nil
}

// Members adapts Client onto forge.ProjectMember. GitHub calls this
// resource "collaborators".
type Members struct{ *Client }

func (m Members) List(projectID int64, args forge.ListBodyArgs) ([]forge.Member, error) {
	c := m.Client
	url := fmt.Sprintf("%s/repos/%s/collaborators", c.basePath, c.path)
	return query.Paged(c.exec, url, forge.ProjectOp, c.headers(), listMaxPages(args), c.throttle, mapMemberRows, nil)
}

func mapMemberRows(body []byte) ([]forge.Member, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Member, 0, len(rows))
	for _, r := range rows {
		mem, err := mapMember(r)
		if err != nil {
			return nil, err
		}
		out = append(out, mem)
	}
	return out, nil
}

func mapMember(raw json.RawMessage) (forge.Member, error) {
	var fields struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.Member{}, err
	}
	name := fields.Name
	if name == "" {
		name = fields.Login
	}
	return forge.Member{ID: fields.ID, Name: name, Username: fields.Login, CreatedAt: fields.CreatedAt}, nil
}

func (c *Client) fetchAuthenticatedUser() (forge.Member, error) {
	url := c.basePath + "/user"
	out, err := query.Get(c.exec, url, forge.ProjectOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.Member{}, err
	}
	return mapMember(out)
}

// Users adapts Client onto forge.UserInfo.
type Users struct{ *Client }

func (u Users) Get() (forge.Member, error) { return u.Client.fetchAuthenticatedUser() }
