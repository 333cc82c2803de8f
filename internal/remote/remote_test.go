package remote

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/config"
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/xtime"
)

func testLog() *logrus.Entry { return logrus.NewEntry(logrus.New()) }

func resolveConfig(t *testing.T, domain string) *config.Config {
	t.Helper()
	t.Setenv(strings.ToUpper(config.DomainKey(domain))+"_API_TOKEN", "tok")
	cfg, err := config.Resolve(t.TempDir(), domain, "owner/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return cfg
}

func TestNewResolvesGitHubDomainToGitHubForge(t *testing.T) {
	cfg := resolveConfig(t, "github.com")
	f, err := New(RemoteURL{Domain: "github.com", Path: "owner/repo"}, cfg, CacheNone, xtime.RealClock{}, testLog())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.GitHub == nil || f.GitLab != nil {
		t.Errorf("expected a GitHub-only Forge, got %+v", f)
	}
}

func TestNewResolvesGitLabDomainToGitLabForge(t *testing.T) {
	cfg := resolveConfig(t, "gitlab.example.com")
	f, err := New(RemoteURL{Domain: "gitlab.example.com", Path: "owner/repo"}, cfg, CacheNone, xtime.RealClock{}, testLog())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.GitLab == nil || f.GitHub != nil {
		t.Errorf("expected a GitLab-only Forge, got %+v", f)
	}
}

func TestNewRejectsUnsupportedDomain(t *testing.T) {
	cfg := resolveConfig(t, "bitbucket.example.com")
	_, err := New(RemoteURL{Domain: "bitbucket.example.com", Path: "owner/repo"}, cfg, CacheNone, xtime.RealClock{}, testLog())
	if err == nil {
		t.Fatal("expected an error for an unsupported domain")
	}
	var appErr *errorsx.ApplicationError
	if e, ok := err.(*errorsx.ApplicationError); ok {
		appErr = e
	}
	if appErr == nil {
		t.Errorf("expected *errorsx.ApplicationError, got %T: %v", err, err)
	}
}

func TestForgeCapabilityAccessorsDispatchToGitHub(t *testing.T) {
	cfg := resolveConfig(t, "github.com")
	f, err := New(RemoteURL{Domain: "github.com", Path: "owner/repo"}, cfg, CacheNone, xtime.RealClock{}, testLog())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.MergeRequest() == nil || f.Project() == nil || f.User() == nil || f.Cicd() == nil ||
		f.CicdRunner() == nil || f.CicdJob() == nil || f.Deploy() == nil || f.DeployAsset() == nil ||
		f.ContainerRegistry() == nil || f.CommentMergeRequest() == nil || f.CodeGist() == nil ||
		f.RemoteTag() == nil || f.Member() == nil {
		t.Error("expected every capability accessor to return a non-nil GitHub handle")
	}
	if f.TrendingProjectURL() == nil {
		t.Error("expected GitHub to implement TrendingProjectURL")
	}
}

func TestForgeTrendingProjectURLIsNilForGitLab(t *testing.T) {
	cfg := resolveConfig(t, "gitlab.example.com")
	f, err := New(RemoteURL{Domain: "gitlab.example.com", Path: "owner/repo"}, cfg, CacheNone, xtime.RealClock{}, testLog())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.TrendingProjectURL() != nil {
		t.Error("expected GitLab's TrendingProjectURL accessor to be nil")
	}
	if f.MergeRequest() == nil {
		t.Error("expected GitLab's MergeRequest accessor to be non-nil")
	}
}

func TestNewUsesNoCacheWhenCacheLocationIsEmpty(t *testing.T) {
	cfg := resolveConfig(t, "github.com")
	cfg.CacheLocation = ""
	if _, err := New(RemoteURL{Domain: "github.com", Path: "owner/repo"}, cfg, CacheFile, xtime.RealClock{}, testLog()); err != nil {
		t.Fatalf("New: %v", err)
	}
}
