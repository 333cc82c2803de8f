package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forgectl/forgectl/internal/forge"
)

func TestExpandHomeExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}
	got := expandHome("~/.config/gitar")
	want := filepath.Join(home, ".config/gitar")
	if got != want {
		t.Errorf("expandHome(~/.config/gitar) = %q, want %q", got, want)
	}
}

func TestExpandHomeLeavesAbsolutePathAlone(t *testing.T) {
	if got := expandHome("/etc/forgectl"); got != "/etc/forgectl" {
		t.Errorf("expandHome should not touch absolute paths, got %q", got)
	}
}

func TestListArgsMapsSortFlag(t *testing.T) {
	defer resetListFlags()

	flagPage = 2
	flagMaxPages = 5
	flagSortDesc = true
	flagFlush = true

	args := listArgs()
	if args.Page != 2 || args.MaxPages != 5 {
		t.Errorf("unexpected pagination fields: %+v", args)
	}
	if args.Sort != forge.SortDesc {
		t.Errorf("expected descending sort, got %q", args.Sort)
	}
	if !args.Flush {
		t.Error("expected Flush to be true")
	}
}

func TestListArgsDefaultsToAscending(t *testing.T) {
	defer resetListFlags()
	flagSortDesc = false

	if got := listArgs().Sort; got != forge.SortAsc {
		t.Errorf("expected ascending sort by default, got %q", got)
	}
}

func resetListFlags() {
	flagPage = 0
	flagMaxPages = 0
	flagPageNumber = 0
	flagCreatedAfter = ""
	flagCreatedBefore = ""
	flagSortDesc = false
	flagFlush = false
}

func TestPrintResultMarshalsJSON(t *testing.T) {
	if err := printResult(map[string]string{"ok": "true"}); err != nil {
		t.Fatalf("printResult: %v", err)
	}
}
