// Command forgectl is a uniform command-line client over GitHub and
// GitLab's REST APIs: merge requests, pipelines, runners, releases,
// container-registry artifacts, projects, gists, users, comments and
// browse URLs, all dispatched through internal/remote's provider-
// agnostic capability handles.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
