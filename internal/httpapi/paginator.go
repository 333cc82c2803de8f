package httpapi

// Runner is the subset of Client a Paginator needs, so it can be faked
// in tests without standing up a full Client.
type Runner interface {
	Run(req *Request) (*Response, error)
	APIMaxPages(req *Request) int
}

// Paginator is a lazy, single-threaded sequence over Response values,
// one page per Next call, following Link-header rel="next" URLs until
// one of the page caps is hit or a page carries no next link.
type Paginator struct {
	runner    Runner
	baseURL   string
	req       *Request
	throttle  ThrottleStrategy
	nextURL   *string
	iter      int
	maxPages  int
	done      bool
	lastErr   error
}

// NewPaginator constructs a Paginator over req. throttle may be nil, in
// which case no inter-page delay is applied.
func NewPaginator(runner Runner, req *Request, throttle ThrottleStrategy) *Paginator {
	return &Paginator{
		runner:   runner,
		baseURL:  req.URL,
		req:      req,
		throttle: throttle,
		maxPages: runner.APIMaxPages(req),
	}
}

// Next returns the next page, or (nil, nil, false) once the walk is
// exhausted. An error is yielded exactly once, after which the walk
// stops.
func (p *Paginator) Next() (*Response, error, bool) {
	if p.done || p.lastErr != nil {
		return nil, nil, false
	}
	if p.iter >= p.maxPages {
		p.done = true
		return nil, nil, false
	}
	if p.iter >= 1 {
		if p.nextURL == nil {
			p.done = true
			return nil, nil, false
		}
		p.req.URL = *p.nextURL
	}

	resp, err := p.runner.Run(p.req)
	p.iter++
	if err != nil {
		p.lastErr = err
		return nil, err, false
	}

	ph := resp.PageHeader()
	if ph.Next != nil {
		p.nextURL = &ph.Next.URL
	} else {
		p.nextURL = nil
	}
	if p.nextURL != nil && p.throttle != nil {
		var rl *RateLimitHeader
		if h := resp.RateLimitHeader(); h.Present {
			rl = &h
		}
		p.throttle.Throttle(rl)
	}
	return resp, nil, true
}

// All drains the paginator, returning every page in link-header order,
// or the first error encountered.
func (p *Paginator) All() ([]*Response, error) {
	var pages []*Response
	for {
		resp, err, ok := p.Next()
		if err != nil {
			return pages, err
		}
		if !ok {
			return pages, nil
		}
		pages = append(pages, resp)
	}
}
