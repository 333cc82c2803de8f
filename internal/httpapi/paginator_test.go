package httpapi

import (
	"testing"

	"github.com/forgectl/forgectl/internal/cache"
)

type scriptedRunner struct {
	pages   []*Response
	errs    []error
	calls   int
	maxPage int
}

func (s *scriptedRunner) Run(req *Request) (*Response, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.pages[i], nil
}

func (s *scriptedRunner) APIMaxPages(req *Request) int {
	if s.maxPage > 0 {
		return s.maxPage
	}
	return RESTAPIMaxPages
}

func TestPaginatorThreePages(t *testing.T) {
	page1 := &Response{Status: 200, Headers: Headers{"link": `<https://x?page=2>; rel="next", <https://x?page=3>; rel="last"`}}
	page2 := &Response{Status: 200, Headers: Headers{"link": `<https://x?page=3>; rel="next"`}}
	page3 := &Response{Status: 200, Headers: Headers{}}
	runner := &scriptedRunner{pages: []*Response{page1, page2, page3}, maxPage: 10}
	req := NewRequest("https://x?page=1", MethodGet, cache.SinglePage)

	p := NewPaginator(runner, req, nil)
	pages, err := p.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
}

func TestPaginatorRespectsMaxPagesCap(t *testing.T) {
	page := func() *Response {
		return &Response{Status: 200, Headers: Headers{"link": `<https://x?page=9>; rel="next"`}}
	}
	runner := &scriptedRunner{pages: []*Response{page(), page(), page(), page()}, maxPage: 2}
	req := NewRequest("https://x?page=1", MethodGet, cache.SinglePage)

	p := NewPaginator(runner, req, nil)
	pages, err := p.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected pagination to stop at the 2-page cap, got %d", len(pages))
	}
}

func TestPaginatorStopsOnError(t *testing.T) {
	runner := &scriptedRunner{
		pages:   []*Response{nil},
		errs:    []error{errTest},
		maxPage: 10,
	}
	req := NewRequest("https://x?page=1", MethodGet, cache.SinglePage)
	p := NewPaginator(runner, req, nil)
	_, err := p.All()
	if err == nil {
		t.Fatal("expected error from first page to propagate")
	}
}

var errTest = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
