package parallel

import "testing"

func TestRunSingleCmd(t *testing.T) {
	cmds := []Cmd[string]{
		func() (string, error) { return "1st op", nil },
	}
	var results []Result[string]
	for r := range Run(cmds) {
		results = append(results, r)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "1st op" {
		t.Errorf("unexpected value: %q", results[0].Value)
	}
}

func TestRunSeveralCmds(t *testing.T) {
	cmds := []Cmd[string]{
		func() (string, error) { return "1st op", nil },
		func() (string, error) { return "2nd op", nil },
	}
	var results []Result[string]
	for r := range Run(cmds) {
		results = append(results, r)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestRunSurfacesPerCmdErrors(t *testing.T) {
	boom := errBoom{}
	cmds := []Cmd[int]{
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
	}
	var okCount, errCount int
	for r := range Run(cmds) {
		if r.Err != nil {
			errCount++
		} else {
			okCount++
		}
	}
	if okCount != 1 || errCount != 1 {
		t.Fatalf("expected 1 ok and 1 err, got ok=%d err=%d", okCount, errCount)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
