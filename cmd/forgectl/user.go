package main

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect the authenticated user",
}

var userGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.User().Get()
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	userCmd.AddCommand(userGetCmd)
}
