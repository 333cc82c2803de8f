package gitlab

import (
	"encoding/json"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Tags adapts Client onto forge.RemoteTag. Plain git repository tags,
// distinct from container registry image tags, live under
// /repository/tags - an extension beyond what this client's merge
// request and pipeline adapters were grounded on, following the same
// project-scoped REST convention as the rest of this package.
type Tags struct{ *Client }

func (t Tags) List(args forge.ListBodyArgs) ([]forge.RepositoryTag, error) {
	c := t.Client
	url := c.restAPIBasepath + "/repository/tags"
	return query.Paged(c.exec, url, forge.RepositoryTagOp, c.headers(), listMaxPages(args), c.throttle, mapRepositoryTagRows, nil)
}

func (t Tags) NumPages(forge.ListBodyArgs) (*int, error) {
	c := t.Client
	url := c.restAPIBasepath + "/repository/tags?page=1"
	return query.NumPages(c.exec, url, forge.RepositoryTagOp, c.headers())
}

func (t Tags) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := t.Client
	url := c.restAPIBasepath + "/repository/tags?page=1"
	return query.NumResources(c.exec, url, forge.RepositoryTagOp, c.headers(), c.perPage)
}

func mapRepositoryTagRows(body []byte) ([]forge.RepositoryTag, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.RepositoryTag, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			Name   string `json:"name"`
			Commit struct {
				URL string `json:"web_url"`
			} `json:"commit"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.RepositoryTag{Name: fields.Name, Path: fields.Commit.URL})
	}
	return out, nil
}
