package query

import (
	"strconv"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/httpapi"
)

// Paged constructs a Request, walks it with a Paginator, and concatenates
// the rows each page's JSON array maps to. If flush is non-nil, rows are
// handed to it as each page arrives instead of being buffered.
func Paged[Out any](exec Executor, url string, op cache.ApiOperation, headers httpapi.Headers, maxPages *int, throttle httpapi.ThrottleStrategy, mapRows func([]byte) ([]Out, error), flush func(Out) error) ([]Out, error) {
	req := httpapi.NewRequest(url, httpapi.MethodGet, op)
	applyHeaders(req, headers)
	req.MaxPages = maxPages

	p := httpapi.NewPaginator(exec, req, throttle)
	var out []Out
	for {
		resp, err, ok := p.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		rows, err := mapRows([]byte(resp.Body))
		if err != nil {
			return out, err
		}
		if flush != nil {
			for _, row := range rows {
				if err := flush(row); err != nil {
					return out, err
				}
			}
			continue
		}
		out = append(out, rows...)
	}
}

// NumPages issues a GET for page=1 and returns the last page number from
// the Link header, or nil if the response carries no pagination at all.
func NumPages(exec Executor, url string, op cache.ApiOperation, headers httpapi.Headers) (*int, error) {
	req := httpapi.NewRequest(url, httpapi.MethodGet, op)
	applyHeaders(req, headers)
	resp, err := exec.Run(req)
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, httpapi.TranslateStatus(resp)
	}
	ph := resp.PageHeader()
	if ph.Last == nil {
		return nil, nil
	}
	n := ph.Last.Number
	return &n, nil
}

// NumberDeltaErr is a pagination-derived approximate resource count: the
// true count lies in [max(1, Num-Delta+1), max(Num, Delta)].
type NumberDeltaErr struct {
	Num   int
	Delta int
}

// Interval renders the closed interval the count is known to lie within.
func (n NumberDeltaErr) Interval() (int, int) {
	lo := n.Num - n.Delta + 1
	if lo < 1 {
		lo = 1
	}
	hi := n.Num
	if n.Delta > hi {
		hi = n.Delta
	}
	return lo, hi
}

func (n NumberDeltaErr) String() string {
	lo, hi := n.Interval()
	return "(" + strconv.Itoa(lo) + ", " + strconv.Itoa(hi) + ")"
}

// NumResources estimates the total resource count from the page count,
// using perPage as both the multiplier and the uncertainty band.
func NumResources(exec Executor, url string, op cache.ApiOperation, headers httpapi.Headers, perPage int) (*NumberDeltaErr, error) {
	pages, err := NumPages(exec, url, op, headers)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		return nil, nil
	}
	return &NumberDeltaErr{Num: *pages * perPage, Delta: perPage}, nil
}
