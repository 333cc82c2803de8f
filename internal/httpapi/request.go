package httpapi

import (
	"strings"

	"github.com/forgectl/forgectl/internal/cache"
)

// Method is the HTTP verb a Request carries. HEAD is part of the closed
// set for completeness with the data model but nothing in the core
// issues one today: every num_pages/num_resources lookup is a GET for
// page=1, matching what the adapters actually do.
type Method string

const (
	MethodGet   Method = "GET"
	MethodPost  Method = "POST"
	MethodPut   Method = "PUT"
	MethodPatch Method = "PATCH"
	MethodHead  Method = "HEAD"
)

// Headers is a case-insensitive string->string map. Lookups and writes
// are normalized to lower case so callers don't have to worry about a
// header being set as "If-None-Match" and looked up as "if-none-match".
type Headers map[string]string

func NewHeaders() Headers { return Headers{} }

func (h Headers) Set(key, value string) { h[strings.ToLower(key)] = value }
func (h Headers) Get(key string) string { return h[strings.ToLower(key)] }
func (h Headers) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Request is a single outgoing call. Body is opaque to the transport
// layer (marshaled to JSON when non-nil, for any non-GET method) - the
// query layer is where Go's generics earn their keep, mapping JSON rows
// into typed domain records; the transport layer itself stays free of
// any JSON-shape knowledge, same as the original's Client<C, D>.
type Request struct {
	URL       string
	Method    Method
	Headers   Headers
	Body      interface{}
	Operation cache.ApiOperation

	// MaxPages overrides the operation's configured page cap for this
	// call, when set. nil means "use the configured cap".
	MaxPages *int

	// RefreshCache forces a GET to bypass the cache lookup entirely.
	RefreshCache bool
}

func NewRequest(url string, method Method, op cache.ApiOperation) *Request {
	return &Request{URL: url, Method: method, Headers: NewHeaders(), Operation: op}
}

// Resource is the cache key this request maps to.
func (r *Request) Resource() cache.Resource {
	return cache.Resource{URL: r.URL, Operation: r.Operation}
}
