package xtime

import "testing"

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want Seconds
	}{
		{"1s", 1}, {"2s", 2}, {"2 seconds", 2}, {"2 second", 2},
		{"2seconds", 2}, {"2second", 2}, {"2 s", 2},
		{"1m", 60}, {"2m", 120}, {"2 minutes", 120}, {"2 minute", 120},
		{"2minutes", 120}, {"2minute", 120}, {"2 m", 120},
		{"1h", 3600}, {"2h", 7200}, {"2 hours", 7200}, {"2 hour", 7200},
		{"2hours", 7200}, {"2hour", 7200}, {"2 h", 7200},
		{"1d", 86400}, {"2d", 172800}, {"2 days", 172800}, {"2 day", 172800},
		{"2days", 172800}, {"2day", 172800}, {"2 d", 172800},
		{"300", 300},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Fatalf("ParseDuration(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDurationInvalidUnit(t *testing.T) {
	if _, err := ParseDuration("2x"); err == nil {
		t.Fatal("expected error for invalid unit char, got nil")
	}
}
