package forge

import "strings"

// BuildDescription appends signature to description, separated by a
// blank line, when both are non-empty. When only one side is non-empty,
// it is returned unchanged.
func BuildDescription(description, signature string) string {
	description = strings.TrimSpace(description)
	signature = strings.TrimSpace(signature)
	switch {
	case description == "":
		return signature
	case signature == "":
		return description
	default:
		return description + "\n\n" + signature
	}
}
