package main

import (
	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/errorsx"
)

var trendingCmd = &cobra.Command{
	Use:   "trending <language>",
	Short: "List trending projects for a language (github.com only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := rf.TrendingProjectURL()
		if t == nil {
			return &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "trending"}
		}
		resp, err := t.List(args[0])
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
}
