package gitlab

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
// hardcoded https:// scheme so unit tests can point it at a plain
// httptest.Server.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	encodedPath := urlEncodePath("owner/repo")
	exec := httpapi.NewClient(cache.NoCache{}, httpapi.DefaultRateLimitThreshold, noMaxPages, xtime.RealClock{}, logrus.NewEntry(logrus.New()), "gitlab", nil)
	return &Client{
		domain:           "gitlab.example.com",
		path:             "owner/repo",
		encodedPath:      encodedPath,
		restAPIBasepath:  srv.URL + "/api/v4/projects/" + encodedPath,
		baseProjectURL:   srv.URL + "/api/v4/projects",
		baseUserURL:      srv.URL + "/api/v4/user",
		mergeRequestsURL: srv.URL + "/api/v4/merge_requests",
		baseRunnerURL:    srv.URL + "/api/v4/runners",
		exec:             exec,
		throttle:         httpapi.NewFixedThrottle(0, xtime.RealClock{}),
		perPage:          query.DefaultPerPage,
		log:              logrus.NewEntry(logrus.New()),
	}
}

func noMaxPages(cache.ApiOperation) int { return httpapi.RESTAPIMaxPages }
