package github

import (
	"encoding/json"
	"fmt"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
)

// Comments adapts Client onto forge.CommentMergeRequest. GitHub pull
// requests are issues under the hood, so comments go through the
// issues API.
type Comments struct{ *Client }

func (cm Comments) List(mergeRequestID int64, args forge.ListBodyArgs) ([]forge.Comment, error) {
	c := cm.Client
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.basePath, c.path, mergeRequestID)
	return query.Paged(c.exec, url, forge.MergeRequestOp, c.headers(), listMaxPages(args), c.throttle, mapCommentRows, nil)
}

func (cm Comments) Create(mergeRequestID int64, body string) (forge.Comment, error) {
	c := cm.Client
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.basePath, c.path, mergeRequestID)
	payload := map[string]string{"body": body}
	out, _, err := query.Send(c.exec, httpapi.MethodPost, url, &payload, forge.MergeRequestOp, c.headers(), []int{201}, decodeJSON[json.RawMessage])
	if err != nil {
		return forge.Comment{}, err
	}
	return mapComment(out)
}

func mapCommentRows(body []byte) ([]forge.Comment, error) {
	rows, err := decodeJSON[[]json.RawMessage](body)
	if err != nil {
		return nil, err
	}
	out := make([]forge.Comment, 0, len(rows))
	for _, r := range rows {
		cmt, err := mapComment(r)
		if err != nil {
			return nil, err
		}
		out = append(out, cmt)
	}
	return out, nil
}

func mapComment(raw json.RawMessage) (forge.Comment, error) {
	var fields struct {
		ID        int64  `json:"id"`
		Body      string `json:"body"`
		CreatedAt string `json:"created_at"`
		User      struct {
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return forge.Comment{}, err
	}
	return forge.Comment{ID: fields.ID, Body: fields.Body, Author: fields.User.Login, CreatedAt: fields.CreatedAt}, nil
}
