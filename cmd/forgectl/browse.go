package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
)

var browseTargets = map[string]forge.BrowseTarget{
	"repo":           forge.BrowseRepo,
	"pipelines":      forge.BrowsePipelines,
	"merge-requests": forge.BrowseMergeRequests,
	"merge-request":  forge.BrowseMergeRequest,
	"releases":       forge.BrowseReleases,
}

var browseCmd = &cobra.Command{
	Use:   "browse <target> [id]",
	Short: "Print the browse URL for a repo, pipelines, merge requests, or releases",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := browseTargets[args[0]]
		if !ok {
			return &errorsx.ApplicationError{Msg: "unknown browse target: " + args[0]}
		}
		opt := forge.BrowseOption{Target: target}
		if target == forge.BrowseMergeRequest {
			if len(args) != 2 {
				return &errorsx.ApplicationError{Msg: "merge-request target requires an id"}
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			opt.ID = id
		}
		url, err := rf.Project().GetURL(opt)
		if err != nil {
			return err
		}
		return printResult(map[string]string{"url": url})
	},
}
