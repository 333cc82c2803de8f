package forge

import "testing"

func TestBuildDescription(t *testing.T) {
	cases := []struct{ description, signature, want string }{
		{"fixes the bug", "Signed-off-by: a", "fixes the bug\n\nSigned-off-by: a"},
		{"", "Signed-off-by: a", "Signed-off-by: a"},
		{"fixes the bug", "", "fixes the bug"},
		{"", "", ""},
	}
	for _, tc := range cases {
		got := BuildDescription(tc.description, tc.signature)
		if got != tc.want {
			t.Errorf("BuildDescription(%q, %q) = %q, want %q", tc.description, tc.signature, got, tc.want)
		}
	}
}
