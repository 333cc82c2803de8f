package httpapi

import "testing"

func TestParseLinkHeader(t *testing.T) {
	link := `<https://x/y?page=2&per_page=30>; rel="next", <https://x/y?page=3&per_page=30>; rel="last"`
	ph := ParseLinkHeader(link)
	if ph.Next == nil || ph.Next.Number != 2 {
		t.Fatalf("expected next page 2, got %+v", ph.Next)
	}
	if ph.Last == nil || ph.Last.Number != 3 {
		t.Fatalf("expected last page 3, got %+v", ph.Last)
	}
}

func TestParseLinkHeaderNoLink(t *testing.T) {
	ph := ParseLinkHeader("")
	if ph.Next != nil || ph.Last != nil {
		t.Fatalf("expected empty PageHeader, got %+v", ph)
	}
}

func TestRateLimitHeaderGitHub(t *testing.T) {
	resp := Response{Headers: Headers{"x-ratelimit-remaining": "5", "x-ratelimit-reset": "1712814211"}}
	rl := resp.RateLimitHeader()
	if !rl.Present || rl.Remaining != 5 || rl.Reset != 1712814211 {
		t.Fatalf("unexpected rate limit header: %+v", rl)
	}
}

func TestRateLimitHeaderGitLab(t *testing.T) {
	resp := Response{Headers: Headers{"ratelimit-remaining": "5", "ratelimit-reset": "1712814211"}}
	rl := resp.RateLimitHeader()
	if !rl.Present || rl.Remaining != 5 {
		t.Fatalf("unexpected rate limit header: %+v", rl)
	}
}

func TestRateLimitHeaderCaseSensitiveMiss(t *testing.T) {
	// camelCase variants of the GitLab header name must not match: header
	// lookup is exact-lowercase-key, not fuzzy-cased.
	h := Headers{}
	h["RateLimit-Remaining"] = "5"
	resp := Response{Headers: h}
	rl := resp.RateLimitHeader()
	if rl.Present {
		t.Fatalf("expected no match for non-lowercase header key, got %+v", rl)
	}
}

func TestETag(t *testing.T) {
	resp := Response{Headers: Headers{"etag": `W/"abc"`}}
	if resp.ETag() != `W/"abc"` {
		t.Errorf("unexpected etag: %q", resp.ETag())
	}
}
