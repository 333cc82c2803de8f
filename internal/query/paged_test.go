package query

import "testing"

func TestNumberDeltaErrString(t *testing.T) {
	cases := []struct {
		num, delta int
		want       string
	}{
		{40, 20, "(21, 40)"},
		{25, 30, "(1, 30)"},
	}
	for _, tc := range cases {
		got := NumberDeltaErr{Num: tc.num, Delta: tc.delta}.String()
		if got != tc.want {
			t.Errorf("NumberDeltaErr{%d,%d}.String() = %q, want %q", tc.num, tc.delta, got, tc.want)
		}
	}
}
