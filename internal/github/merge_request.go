package github

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
)

// MergeRequests adapts Client onto forge.MergeRequest.
type MergeRequests struct{ *Client }

func (c *Client) urlListMergeRequests(args forge.MergeRequestListArgs) string {
	state := "open"
	if args.State == "closed" || args.State == "merged" {
		// GitHub has no distinction between closed and merged; a merged
		// pull request is considered closed.
		state = "closed"
	}
	url := fmt.Sprintf("%s/repos/%s/pulls?state=%s", c.basePath, c.path, state)
	switch {
	case args.Assignee != "":
		url += "&assignee=" + args.Assignee
	case args.Author != "":
		url += "&creator=" + args.Author
	}
	return url
}

// Open implements the pull-request open state machine: POST, then on 201
// PATCH the issues endpoint to set the assignee (pull requests have no
// direct assignee endpoint), or on 422 look up the already-existing PR
// by head filter.
func (m MergeRequests) Open(args forge.OpenMergeRequestArgs) (forge.MergeRequestResponse, error) {
	c := m.Client
	body := map[string]interface{}{
		"head":  args.SourceBranch,
		"base":  args.TargetBranch,
		"title": args.Title,
		"body":  args.Description,
	}
	if args.Draft {
		body["draft"] = true
	}
	url := fmt.Sprintf("%s/repos/%s/pulls", c.basePath, c.path)
	out, resp, err := query.Send(c.exec, httpapi.MethodPost, url, &body, forge.MergeRequestOp, c.headers(), []int{201, 422}, decodeJSON[json.RawMessage])
	if err != nil && resp == nil {
		return forge.MergeRequestResponse{}, err
	}

	switch resp.Status {
	case 201:
		mr, err := mapMergeRequest(out)
		if err != nil {
			return forge.MergeRequestResponse{}, err
		}
		if args.Assignee != "" {
			issuesURL := fmt.Sprintf("%s/repos/%s/issues/%d", c.basePath, c.path, mr.ID)
			patchBody := map[string]interface{}{"assignees": []string{args.Assignee}}
			if _, _, err := query.Send(c.exec, httpapi.MethodPatch, issuesURL, &patchBody, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage]); err != nil {
				return forge.MergeRequestResponse{}, err
			}
		}
		return mr, nil
	case 422:
		existingURL := fmt.Sprintf("%s?head=%s:%s", url, c.path, args.SourceBranch)
		rows, err := query.Get(c.exec, existingURL, forge.MergeRequestOp, c.headers(), decodeJSON[[]json.RawMessage])
		if err != nil {
			return forge.MergeRequestResponse{}, err
		}
		if len(rows) != 1 {
			return forge.MergeRequestResponse{}, &errorsx.RemoteUnexpectedResponseContractError{
				Msg: fmt.Sprintf("expected exactly one existing pull request at %s, got %d", existingURL, len(rows)),
			}
		}
		return mapMergeRequest(rows[0])
	default:
		return forge.MergeRequestResponse{}, httpapi.TranslateStatus(resp)
	}
}

func (m MergeRequests) List(args forge.MergeRequestListArgs) ([]forge.MergeRequestResponse, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	c := m.Client
	url := c.urlListMergeRequests(args)
	maxPages := listMaxPages(args.ListBodyArgs)
	return query.Paged(c.exec, url, forge.MergeRequestOp, c.headers(), maxPages, c.throttle, mapMergeRequestRows, nil)
}

func (m MergeRequests) Get(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.basePath, c.path, id)
	out, err := query.Get(c.exec, url, forge.MergeRequestOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return mapMergeRequest(out)
}

func (m MergeRequests) Merge(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/merge", c.basePath, c.path, id)
	if _, _, err := query.Send[struct{}](c.exec, httpapi.MethodPut, url, nil, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage]); err != nil {
		return forge.MergeRequestResponse{}, err
	}
	mrURL, err := c.getProjectURL(forge.BrowseOption{Target: forge.BrowseMergeRequest, ID: id})
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return forge.MergeRequestResponse{ID: id, WebURL: mrURL}, nil
}

func (m MergeRequests) Close(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.basePath, c.path, id)
	body := map[string]interface{}{"state": "closed"}
	out, _, err := query.Send(c.exec, httpapi.MethodPatch, url, &body, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return mapMergeRequest(out)
}

// Approve has no GitHub REST equivalent as a plain pull-request
// operation (it requires the separate reviews API with an event
// payload); reported as unsupported rather than silently no-op'd.
func (m MergeRequests) Approve(int64) (forge.MergeRequestResponse, error) {
	return forge.MergeRequestResponse{}, &errorsx.OperationNotSupportedError{Provider: "github", Operation: "approve"}
}

func (m MergeRequests) NumPages(args forge.MergeRequestListArgs) (*int, error) {
	c := m.Client
	url := c.urlListMergeRequests(args) + "&page=1"
	return query.NumPages(c.exec, url, forge.MergeRequestOp, c.headers())
}

func (m MergeRequests) NumResources(args forge.MergeRequestListArgs) (*forge.NumberDeltaErr, error) {
	c := m.Client
	url := c.urlListMergeRequests(args) + "&page=1"
	return query.NumResources(c.exec, url, forge.MergeRequestOp, c.headers(), c.perPage)
}

// listMaxPages reads the per-request page cap off ListBodyArgs, nil
// meaning "use the configured operation default".
func listMaxPages(args forge.ListBodyArgs) *int {
	if args.MaxPages == 0 {
		return nil
	}
	n := args.MaxPages
	return &n
}

func mapMergeRequestRows(body []byte) ([]forge.MergeRequestResponse, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.MergeRequestResponse, 0, len(rows))
	for _, r := range rows {
		mr, err := mapMergeRequest(r)
		if err != nil {
			return nil, err
		}
		out = append(out, mr)
	}
	return out, nil
}

func mapMergeRequest(raw json.RawMessage) (forge.MergeRequestResponse, error) {
	var fields struct {
		Number  int64  `json:"number"`
		ID      int64  `json:"id"`
		HTMLURL string `json:"html_url"`
		State   string `json:"state"`
		Head    struct {
			Ref string `json:"ref"`
		} `json:"head"`
		Base struct {
			Ref string `json:"ref"`
		} `json:"base"`
		Body      string `json:"body"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
		User      struct {
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.MergeRequestResponse{}, err
	}
	id := fields.Number
	if id == 0 {
		id = fields.ID
	}
	return forge.MergeRequestResponse{
		ID:           id,
		WebURL:       strings.Trim(fields.HTMLURL, `"`),
		Author:       fields.User.Login,
		Description:  fields.Body,
		SourceBranch: fields.Head.Ref,
		TargetBranch: fields.Base.Ref,
		State:        fields.State,
		CreatedAt:    fields.CreatedAt,
		UpdatedAt:    fields.UpdatedAt,
	}, nil
}
