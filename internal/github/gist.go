package github

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Gists adapts Client onto forge.CodeGist.
// https://docs.github.com/en/rest/gists/gists
type Gists struct{ *Client }

func (g Gists) List(args forge.ListBodyArgs) ([]forge.Gist, error) {
	c := g.Client
	url := c.basePath + "/gists"
	return query.Paged(c.exec, url, forge.GistOp, c.headers(), listMaxPages(args), c.throttle, mapGistRows, nil)
}

func (g Gists) NumPages(forge.ListBodyArgs) (*int, error) {
	c := g.Client
	url := c.basePath + "/gists?page=1"
	return query.NumPages(c.exec, url, forge.GistOp, c.headers())
}

func (g Gists) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := g.Client
	url := c.basePath + "/gists?page=1"
	return query.NumResources(c.exec, url, forge.GistOp, c.headers(), c.perPage)
}

func mapGistRows(body []byte) ([]forge.Gist, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Gist, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			URL         string                     `json:"url"`
			Description string                     `json:"description"`
			CreatedAt   string                     `json:"created_at"`
			Files       map[string]json.RawMessage `json:"files"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(fields.Files))
		for name := range fields.Files {
			names = append(names, name)
		}
		sort.Strings(names)
		out = append(out, forge.Gist{
			URL:         fields.URL,
			Description: fields.Description,
			Files:       strings.Join(names, ","),
			CreatedAt:   fields.CreatedAt,
		})
	}
	return out, nil
}
