// Package query is the small, typed façade over the HTTP transport that
// provider adapters use instead of talking to httpapi.Client directly.
// It knows nothing about GitHub/GitLab JSON shapes - callers supply the
// row mapper - and the transport layer below it knows nothing about
// pagination beyond Paginator, breaking the adapter/client/query cycle
// the design notes call out.
package query

import (
	"encoding/json"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/httpapi"
)

// Executor is the subset of the transport stack (Client, or Client
// wrapped in a Backoff) the query layer needs.
type Executor interface {
	httpapi.Runner
}

// DefaultPerPage is assumed when a provider's actual per_page value is
// not otherwise known.
const DefaultPerPage = 30

// Get issues a single GET and maps the JSON body through mapper.
func Get[Out any](exec Executor, url string, op cache.ApiOperation, headers httpapi.Headers, mapper func([]byte) (Out, error)) (Out, error) {
	var zero Out
	req := httpapi.NewRequest(url, httpapi.MethodGet, op)
	applyHeaders(req, headers)
	resp, err := exec.Run(req)
	if err != nil {
		return zero, err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return zero, httpapi.TranslateStatus(resp)
	}
	return mapper([]byte(resp.Body))
}

// Send issues a non-GET request (POST/PUT/PATCH), asserting the status
// is one of accept, and maps the JSON body through mapper.
func Send[Body, Out any](exec Executor, method httpapi.Method, url string, body *Body, op cache.ApiOperation, headers httpapi.Headers, accept []int, mapper func([]byte) (Out, error)) (Out, *httpapi.Response, error) {
	var zero Out
	req := httpapi.NewRequest(url, method, op)
	applyHeaders(req, headers)
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return zero, nil, err
		}
		req.Body = encoded
	}
	resp, err := exec.Run(req)
	if err != nil {
		return zero, nil, err
	}
	if !statusAccepted(resp.Status, accept) {
		return zero, resp, httpapi.TranslateStatus(resp)
	}
	out, err := mapper([]byte(resp.Body))
	return out, resp, err
}

func statusAccepted(status int, accept []int) bool {
	for _, a := range accept {
		if status == a {
			return true
		}
	}
	return false
}

func applyHeaders(req *httpapi.Request, headers httpapi.Headers) {
	for k, v := range headers {
		req.Headers.Set(k, v)
	}
}
