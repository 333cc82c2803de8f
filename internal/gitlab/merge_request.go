package gitlab

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
)

// MergeRequests adapts Client onto forge.MergeRequest.
type MergeRequests struct{ *Client }

// listMergeRequestURL flips between project-scoped and user-scoped
// depending on which filter is set, matching the project's REST API:
// assignee/reviewer/author filters only exist on the global
// /merge_requests endpoint.
func (c *Client) listMergeRequestURL(args forge.MergeRequestListArgs, numPages bool) string {
	var url string
	switch {
	case args.Assignee != "":
		url = fmt.Sprintf("%s?state=%s&assignee_id=%s", c.mergeRequestsURL, args.State, args.Assignee)
	case args.Reviewer != "":
		url = fmt.Sprintf("%s?state=%s&reviewer_id=%s", c.mergeRequestsURL, args.State, args.Reviewer)
	case args.Author != "":
		url = fmt.Sprintf("%s?state=%s&author_id=%s", c.mergeRequestsURL, args.State, args.Author)
	default:
		url = fmt.Sprintf("%s/merge_requests?state=%s", c.restAPIBasepath, args.State)
	}
	if numPages {
		url += "&page=1"
	}
	return url
}

// Open implements the merge-request open state machine: POST, then on
// 409 Conflict parse the already-open MR's IID out of the error message
// and, if amend was requested, PUT the same body onto it.
func (m MergeRequests) Open(args forge.OpenMergeRequestArgs) (forge.MergeRequestResponse, error) {
	c := m.Client
	body := map[string]interface{}{
		"source_branch":        args.SourceBranch,
		"target_branch":        args.TargetBranch,
		"title":                args.Title,
		"description":          args.Description,
		"remove_source_branch": true,
	}
	if args.Assignee != "" {
		body["assignee_id"] = args.Assignee
	}
	if args.TargetRepo != "" {
		id, err := c.getProjectIDByPath(args.TargetRepo)
		if err != nil {
			return forge.MergeRequestResponse{}, err
		}
		body["target_project_id"] = id
	}

	url := c.restAPIBasepath + "/merge_requests"
	out, resp, err := query.Send(c.exec, httpapi.MethodPost, url, &body, forge.MergeRequestOp, c.headers(), []int{201, 409}, decodeJSON[json.RawMessage])
	if err != nil && resp == nil {
		return forge.MergeRequestResponse{}, err
	}

	if resp.Status == 409 {
		iid, err := parseConflictIID(out)
		if err != nil {
			return forge.MergeRequestResponse{}, err
		}
		if args.Amend {
			amendURL := fmt.Sprintf("%s/merge_requests/%s", c.restAPIBasepath, iid)
			if _, _, err := query.Send(c.exec, httpapi.MethodPut, amendURL, &body, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage]); err != nil {
				return forge.MergeRequestResponse{}, err
			}
		}
		n, err := strconv.ParseInt(iid, 10, 64)
		if err != nil {
			return forge.MergeRequestResponse{}, &errorsx.RemoteUnexpectedResponseContractError{Msg: "existing merge request iid is not numeric: " + iid}
		}
		return forge.MergeRequestResponse{
			ID:     n,
			WebURL: fmt.Sprintf("https://%s/%s/-/merge_requests/%s", c.domain, c.path, iid),
		}, nil
	}

	if resp.Status != 201 {
		return forge.MergeRequestResponse{}, httpapi.TranslateStatus(resp)
	}
	return mapMergeRequest(out)
}

// parseConflictIID extracts the existing merge request's IID from a 409
// response body shaped {"message":["... !<iid>"]}.
func parseConflictIID(body json.RawMessage) (string, error) {
	var payload struct {
		Message []string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return "", &errorsx.RemoteUnexpectedResponseContractError{Msg: "409 response did not carry a message[0]: " + string(body)}
	}
	fields := strings.Fields(payload.Message[0])
	if len(fields) == 0 {
		return "", &errorsx.RemoteUnexpectedResponseContractError{Msg: "409 message was empty"}
	}
	return strings.TrimPrefix(fields[len(fields)-1], "!"), nil
}

func (m MergeRequests) List(args forge.MergeRequestListArgs) ([]forge.MergeRequestResponse, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	c := m.Client
	url := c.listMergeRequestURL(args, false)
	return query.Paged(c.exec, url, forge.MergeRequestOp, c.headers(), listMaxPages(args.ListBodyArgs), c.throttle, mapMergeRequestRows, nil)
}

func (m MergeRequests) Get(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/merge_requests/%d", c.restAPIBasepath, id)
	out, err := query.Get(c.exec, url, forge.MergeRequestOp, c.headers(), decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return mapMergeRequest(out)
}

func (m MergeRequests) Merge(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/merge_requests/%d/merge", c.restAPIBasepath, id)
	out, _, err := query.Send[struct{}](c.exec, httpapi.MethodPut, url, nil, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return mapMergeRequest(out)
}

func (m MergeRequests) Close(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/merge_requests/%d", c.restAPIBasepath, id)
	body := map[string]interface{}{"state_event": "close"}
	out, _, err := query.Send(c.exec, httpapi.MethodPut, url, &body, forge.MergeRequestOp, c.headers(), []int{200}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return mapMergeRequest(out)
}

// Approve's response carries no web_url; it is patched in from the
// pure browse-URL builder same as the original does.
func (m MergeRequests) Approve(id int64) (forge.MergeRequestResponse, error) {
	c := m.Client
	url := fmt.Sprintf("%s/merge_requests/%d/approve", c.restAPIBasepath, id)
	out, _, err := query.Send[struct{}](c.exec, httpapi.MethodPost, url, nil, forge.MergeRequestOp, c.headers(), []int{201}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	mr, err := mapMergeRequest(out)
	if err != nil {
		return forge.MergeRequestResponse{}, err
	}
	mr.WebURL, err = c.getProjectURL(forge.BrowseOption{Target: forge.BrowseMergeRequest, ID: id})
	return mr, err
}

func (m MergeRequests) NumPages(args forge.MergeRequestListArgs) (*int, error) {
	c := m.Client
	url := c.listMergeRequestURL(args, true)
	return query.NumPages(c.exec, url, forge.MergeRequestOp, c.headers())
}

func (m MergeRequests) NumResources(args forge.MergeRequestListArgs) (*forge.NumberDeltaErr, error) {
	c := m.Client
	url := c.listMergeRequestURL(args, true)
	return query.NumResources(c.exec, url, forge.MergeRequestOp, c.headers(), c.perPage)
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
		IID          int64  `json:"iid"`
		WebURL       string `json:"web_url"`
		SourceBranch string `json:"source_branch"`
		TargetBranch string `json:"target_branch"`
		State        string `json:"state"`
		Description  string `json:"description"`
		CreatedAt    string `json:"created_at"`
		UpdatedAt    string `json:"updated_at"`
		Author       struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.MergeRequestResponse{}, err
	}
	return forge.MergeRequestResponse{
		ID:           fields.IID,
		WebURL:       fields.WebURL,
		Author:       fields.Author.Username,
		Description:  fields.Description,
		SourceBranch: fields.SourceBranch,
		TargetBranch: fields.TargetBranch,
		State:        fields.State,
		CreatedAt:    fields.CreatedAt,
		UpdatedAt:    fields.UpdatedAt,
	}, nil
}
