package main

import (
	"github.com/spf13/cobra"
)

var gistCmd = &cobra.Command{
	Use:   "gist",
	Short: "List gists/snippets",
}

var gistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gists",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.CodeGist().List(listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(gistListCmd)
	gistCmd.AddCommand(gistListCmd)
}
