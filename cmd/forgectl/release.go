package main

import (
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "List releases and their assets",
}

var releaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.Deploy().List(listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var releaseGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.Deploy().Get(args[0])
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var releaseAssetsCmd = &cobra.Command{
	Use:   "assets <release-id>",
	Short: "List assets attached to a release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.DeployAsset().List(args[0], listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(releaseListCmd)
	addListFlags(releaseAssetsCmd)
	releaseCmd.AddCommand(releaseListCmd, releaseGetCmd, releaseAssetsCmd)
}
