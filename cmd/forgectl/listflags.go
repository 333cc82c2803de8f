package main

import (
	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/forge"
)

// Shared pagination/filter flags every list subcommand accepts, wired
// into forge.ListBodyArgs.
var (
	flagPage          int
	flagMaxPages      int
	flagPageNumber    int
	flagCreatedAfter  string
	flagCreatedBefore string
	flagSortDesc      bool
	flagFlush         bool
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagPage, "page", 0, "starting page")
	cmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "maximum pages to fetch (0 = provider default)")
	cmd.Flags().IntVar(&flagPageNumber, "page-number", 0, "fetch exactly this single page")
	cmd.Flags().StringVar(&flagCreatedAfter, "created-after", "", "only resources created after this timestamp")
	cmd.Flags().StringVar(&flagCreatedBefore, "created-before", "", "only resources created before this timestamp")
	cmd.Flags().BoolVar(&flagSortDesc, "desc", false, "sort descending instead of ascending")
	cmd.Flags().BoolVar(&flagFlush, "flush", false, "set ListBodyArgs.Flush (row streaming); the list adapters do not read it and return buffered rows")
}

func listArgs() forge.ListBodyArgs {
	sort := forge.SortAsc
	if flagSortDesc {
		sort = forge.SortDesc
	}
	return forge.ListBodyArgs{
		Page:          flagPage,
		MaxPages:      flagMaxPages,
		PageNumber:    flagPageNumber,
		CreatedAfter:  flagCreatedAfter,
		CreatedBefore: flagCreatedBefore,
		Sort:          sort,
		Flush:         flagFlush,
	}
}
