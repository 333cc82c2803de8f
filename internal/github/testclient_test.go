package github

import (
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/cache"
	"github.com/forgectl/forgectl/internal/httpapi"
	"github.com/forgectl/forgectl/internal/query"
	"github.com/forgectl/forgectl/internal/xtime"
)

// newTestClient wires a *Client straight at srv, bypassing NewClient's
// "https://api.<domain>" formatting so unit tests can point it at an
// httptest.Server instead.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	exec := httpapi.NewClient(cache.NoCache{}, httpapi.DefaultRateLimitThreshold, noMaxPages, xtime.RealClock{}, logrus.NewEntry(logrus.New()), "github", nil)
	return &Client{
		domain:   "github.com",
		path:     "owner/repo",
		basePath: srv.URL,
		exec:     exec,
		throttle: httpapi.NewFixedThrottle(0, xtime.RealClock{}),
		perPage:  query.DefaultPerPage,
		log:      logrus.NewEntry(logrus.New()),
	}
}

func noMaxPages(cache.ApiOperation) int { return httpapi.RESTAPIMaxPages }
