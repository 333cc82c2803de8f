package gitlab

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgectl/forgectl/internal/forge"
)

func TestMergeRequestsOpenSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		w.WriteHeader(201)
		_, _ = w.Write([]byte(`{"iid": 11, "web_url": "https://gitlab.example.com/owner/repo/-/merge_requests/11", "state": "opened", "source_branch": "feature", "target_branch": "main", "author": {"username": "alice"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Open(forge.OpenMergeRequestArgs{Title: "t", SourceBranch: "feature", TargetBranch: "main"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if resp.ID != 11 || resp.Author != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestMergeRequestsOpenConflictWithoutAmend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		w.WriteHeader(409)
		_, _ = w.Write([]byte(`{"message": ["Another open merge request already exists for this source branch: !23"]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Open(forge.OpenMergeRequestArgs{Title: "t", SourceBranch: "feature", TargetBranch: "main"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if resp.ID != 23 {
		t.Errorf("expected conflict iid 23, got %d", resp.ID)
	}
}

func TestMergeRequestsOpenConflictWithAmendPuts(t *testing.T) {
	var amended bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(409)
		_, _ = w.Write([]byte(`{"message": ["exists: !8"]}`))
	})
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests/8", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("unexpected method %s", r.Method)
		}
		amended = true
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Open(forge.OpenMergeRequestArgs{Title: "t", SourceBranch: "feature", TargetBranch: "main", Amend: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !amended {
		t.Error("expected amend PUT to fire")
	}
	if resp.ID != 8 {
		t.Errorf("expected iid 8, got %d", resp.ID)
	}
}

func TestMergeRequestsList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"iid": 1, "state": "opened"}, {"iid": 2, "state": "opened"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	rows, err := mrs.List(forge.MergeRequestListArgs{State: "opened"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestMergeRequestsListByAssigneeUsesGlobalEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/merge_requests", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("assignee_id"); got != "42" {
			t.Errorf("expected assignee_id=42, got %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	if _, err := mrs.List(forge.MergeRequestListArgs{State: "opened", Assignee: "42"}); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestMergeRequestsGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"iid": 5, "state": "opened"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.ID != 5 {
		t.Errorf("expected id 5, got %d", resp.ID)
	}
}

func TestMergeRequestsMerge(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests/3/merge", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("unexpected method %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"iid": 3, "state": "merged"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Merge(3)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if resp.State != "merged" {
		t.Errorf("expected merged state, got %q", resp.State)
	}
}

func TestMergeRequestsClose(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests/4", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("unexpected method %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"iid": 4, "state": "closed"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Close(4)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if resp.State != "closed" {
		t.Errorf("expected closed state, got %q", resp.State)
	}
}

func TestMergeRequestsApprovePatchesWebURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/owner/repo/merge_requests/6/approve", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		w.WriteHeader(201)
		_, _ = w.Write([]byte(`{"iid": 6, "state": "opened", "web_url": ""}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	mrs := MergeRequests{c}

	resp, err := mrs.Approve(6)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	want := "https://gitlab.example.com/owner/repo/-/merge_requests/6"
	if resp.WebURL != want {
		t.Errorf("expected web url %q, got %q", want, resp.WebURL)
	}
}
