package github

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/query"
)

// Releases adapts Client onto forge.Deploy.
type Releases struct{ *Client }

func (r Releases) List(args forge.ListBodyArgs) ([]forge.Release, error) {
	c := r.Client
	url := fmt.Sprintf("%s/repos/%s/releases", c.basePath, c.path)
	return query.Paged(c.exec, url, forge.ReleaseOp, c.headers(), listMaxPages(args), c.throttle, mapReleaseRows, nil)
}

func (r Releases) Get(id string) (forge.Release, error) {
	c := r.Client
	url := fmt.Sprintf("%s/repos/%s/releases/%s", c.basePath, c.path, id)
	return query.Get(c.exec, url, forge.ReleaseOp, c.headers(), mapRelease)
}

func (r Releases) NumPages(forge.ListBodyArgs) (*int, error) {
	c := r.Client
	url := fmt.Sprintf("%s/repos/%s/releases?page=1", c.basePath, c.path)
	return query.NumPages(c.exec, url, forge.ReleaseOp, c.headers())
}

func (r Releases) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := r.Client
	url := fmt.Sprintf("%s/repos/%s/releases?page=1", c.basePath, c.path)
	return query.NumResources(c.exec, url, forge.ReleaseOp, c.headers(), c.perPage)
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

func mapRelease(body []byte) (forge.Release, error) {
	var fields struct {
		ID          int64  `json:"id"`
		HTMLURL     string `json:"html_url"`
		TagName     string `json:"tag_name"`
		Name        string `json:"name"`
		Body        string `json:"body"`
		CreatedAt   string `json:"created_at"`
		PublishedAt string `json:"published_at"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return forge.Release{}, err
	}
	return forge.Release{
		ID:          fmt.Sprintf("%d", fields.ID),
		URL:         fields.HTMLURL,
		Tag:         fields.TagName,
		Title:       fields.Name,
		Description: fields.Body,
		CreatedAt:   fields.CreatedAt,
		UpdatedAt:   fields.PublishedAt,
	}, nil
}

// Assets adapts Client onto forge.DeployAsset.
type Assets struct{ *Client }

func (a Assets) List(releaseID string, args forge.ListBodyArgs) ([]forge.ReleaseAsset, error) {
	c := a.Client
	url := fmt.Sprintf("%s/repos/%s/releases/%s/assets", c.basePath, c.path, releaseID)
	return query.Paged(c.exec, url, forge.ReleaseOp, c.headers(), listMaxPages(args), c.throttle, mapReleaseAssetRows, nil)
}

func (a Assets) NumPages(releaseID string, forge.ListBodyArgs) (*int, error) {
	c := a.Client
	url := fmt.Sprintf("%s/repos/%s/releases/%s/assets?page=1", c.basePath, c.path, releaseID)
	return query.NumPages(c.exec, url, forge.ReleaseOp, c.headers())
}

func (a Assets) NumResources(releaseID string, forge.ListBodyArgs) (*forge.NumberDeltaErr, error) {
	c := a.Client
	url := fmt.Sprintf("%s/repos/%s/releases/%s/assets?page=1", c.basePath, c.path, releaseID)
	return query.NumResources(c.exec, url, forge.ReleaseOp, c.headers(), c.perPage)
}

func mapReleaseAssetRows(body []byte) ([]forge.ReleaseAsset, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.ReleaseAsset, 0, len(rows))
	for _, r := range rows {
		var fields struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
			Size               int64  `json:"size"`
		}
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, err
		}
		out = append(out, forge.ReleaseAsset{Name: fields.Name, URL: fields.BrowserDownloadURL, Size: fields.Size})
	}
	return out, nil
}
