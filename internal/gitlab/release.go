package gitlab

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Releases adapts Client onto forge.Deploy.
type Releases struct{ *Client }

func (r Releases) List(args forge.ListBodyArgs) ([]forge.Release, error) {
	c := r.Client
	url := c.restAPIBasepath + "/releases"
	return query.Paged(c.exec, url, forge.ReleaseOp, c.headers(), listMaxPages(args), c.throttle, mapReleaseRows, nil)
}

func (r Releases) Get(id string) (forge.Release, error) {
	c := r.Client
	url := fmt.Sprintf("%s/releases/%s", c.restAPIBasepath, id)
	return query.Get(c.exec, url, forge.ReleaseOp, c.headers(), mapRelease)
}

// NumPages has no wired lookup; GitLab's release list carries no
// pagination contract this client has confirmed against a Link header.
func (r Releases) NumPages(forge.ListBodyArgs) (*int, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "num_pages_release"}
}

func (r Releases) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "num_resources_release"}
}

func mapReleaseRows(body []byte) ([]forge.Release, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Release, 0, len(rows))
	for _, r := range rows {
		rel, err := mapRelease(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

// mapRelease keys ID off commit.short_id: GitLab's release payload has
// no numeric or opaque id field of its own.
func mapRelease(body []byte) (forge.Release, error) {
	var fields struct {
		Commit struct {
			ShortID string `json:"short_id"`
		} `json:"commit"`
		Links struct {
			Self string `json:"self"`
		} `json:"_links"`
		TagName     string `json:"tag_name"`
		Name        string `json:"name"`
		Description string `json:"description"`
		CreatedAt   string `json:"created_at"`
		ReleasedAt  string `json:"released_at"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return forge.Release{}, err
	}
	return forge.Release{
		ID:          fields.Commit.ShortID,
		URL:         fields.Links.Self,
		Tag:         fields.TagName,
		Title:       fields.Name,
		Description: fields.Description,
		CreatedAt:   fields.CreatedAt,
		UpdatedAt:   fields.ReleasedAt,
	}, nil
}

// Assets adapts Client onto forge.DeployAsset. GitLab nests a release's
// downloadable links under assets.links in the release payload itself,
// so this fetches the same release URL Releases.Get uses rather than a
// dedicated endpoint.
type Assets struct{ *Client }

func (a Assets) List(releaseID string, args forge.ListBodyArgs) ([]forge.ReleaseAsset, error) {
	c := a.Client
	url := fmt.Sprintf("%s/releases/%s", c.restAPIBasepath, releaseID)
	out, err := query.Get(c.exec, url, forge.ReleaseOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return nil, err
	}
	var fields struct {
		Assets struct {
			Links []struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"links"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(out, &fields); err != nil {
		return nil, err
	}
	assets := make([]forge.ReleaseAsset, 0, len(fields.Assets.Links))
	for _, l := range fields.Assets.Links {
		assets = append(assets, forge.ReleaseAsset{Name: l.Name, URL: l.URL})
	}
	return assets, nil
}

func (a Assets) NumPages(string, forge.ListBodyArgs) (*int, error) { return nil, nil }

func (a Assets) NumResources(string, forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	return nil, nil
}
