package gitlab

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Projects adapts Client onto forge.RemoteProject.
type Projects struct{ *Client }

func (p Projects) Get(id int64) (forge.Project, error) {
	c := p.Client
	url := fmt.Sprintf("%s/%d", c.baseProjectURL, id)
	return query.Get(c.exec, url, forge.ProjectOp, c.headers(), mapProject)
}

func (p Projects) GetIDByPath(path string) (int64, error) {
	c := p.Client
	return c.getProjectIDByPath(path)
}

// getProjectIDByPath resolves a "group/project" path to its numeric id
// via the URL-encoded single-project lookup; MergeRequests.Open uses it
// to resolve target_project_id for cross-repo merge requests.
func (c *Client) getProjectIDByPath(path string) (int64, error) {
	encoded := urlEncodePath(path)
	url := c.baseProjectURL + "/" + encoded
	proj, err := query.Get(c.exec, url, forge.ProjectOp, c.headers(), mapProject)
	if err != nil {
		return 0, err
	}
	return proj.ID, nil
}

func (p Projects) GetURL(opt forge.BrowseOption) (string, error) { return p.Client.getProjectURL(opt) }

func mapProject(body []byte) (forge.Project, error) {
	var fields struct {
		ID                int64  `json:"id"`
		DefaultBranch     string `json:"default_branch"`
		WebURL            string `json:"web_url"`
		CreatedAt         string `json:"created_at"`
		Description       string `json:"description"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return forge.Project{}, err
	}
	return forge.Project{
		ID:            fields.ID,
		DefaultBranch: fields.DefaultBranch,
		HTMLURL:       fields.WebURL,
		CreatedAt:     fields.CreatedAt,
		Description:   fields.Description,
	}, nil
}

// Members adapts Client onto forge.ProjectMember.
type Members struct{ *Client }

func (m Members) List(projectID int64, args forge.ListBodyArgs) ([]forge.Member, error) {
	c := m.Client
	url := fmt.Sprintf("%s/%d/members", c.baseProjectURL, projectID)
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
		Username  string `json:"username"`
		Name      string `json:"name"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.Member{}, err
	}
	name := fields.Name
	if name == "" {
		name = fields.Username
	}
	return forge.Member{ID: fields.ID, Name: name, Username: fields.Username, CreatedAt: fields.CreatedAt}, nil
}

// Users adapts Client onto forge.UserInfo.
type Users struct{ *Client }

func (u Users) Get() (forge.Member, error) {
	c := u.Client
	out, err := query.Get(c.exec, c.baseUserURL, forge.ProjectOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.Member{}, err
	}
	return mapMember(out)
}
