package github

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Tags adapts Client onto forge.RemoteTag: plain git repository tags,
// distinct from the container registry's image tags.
type Tags struct{ *Client }

func (t Tags) List(args forge.ListBodyArgs) ([]forge.RepositoryTag, error) {
	c := t.Client
	url := fmt.Sprintf("%s/repos/%s/tags", c.basePath, c.path)
	return query.Paged(c.exec, url, forge.RepositoryTagOp, c.headers(), listMaxPages(args), c.throttle, mapRepositoryTagRows, nil)
}

func (t Tags) NumPages(forge.ListBodyArgs) (*int, error) {
	c := t.Client
	url := fmt.Sprintf("%s/repos/%s/tags?page=1", c.basePath, c.path)
	return query.NumPages(c.exec, url, forge.RepositoryTagOp, c.headers())
}

func (t Tags) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := t.Client
	url := fmt.Sprintf("%s/repos/%s/tags?page=1", c.basePath, c.path)
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
				URL string `json:"url"`
			} `json:"commit"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.RepositoryTag{Name: fields.Name, Path: fields.Commit.URL})
	}
	return out, nil
}
