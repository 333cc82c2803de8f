package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/forge"
)

var runnerCmd = &cobra.Command{
	Use:   "runner",
	Short: "List, inspect, and register CI/CD runners",
}

var runnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runners",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.CicdRunner().List(listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var runnerGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single runner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.CicdRunner().Get(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var (
	runnerDescription string
	runnerTags        string
	runnerRunUntagged bool
)

var runnerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new runner and print its registration token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var tags []string
		if runnerTags != "" {
			tags = strings.Split(runnerTags, ",")
		}
		token, err := rf.CicdRunner().Create(forge.RunnerRegisterArgs{
			Description: runnerDescription,
			Tags:        tags,
			RunUntagged: runnerRunUntagged,
		})
		if err != nil {
			return err
		}
		return printResult(map[string]string{"token": token})
	},
}

func init() {
	addListFlags(runnerListCmd)
	runnerCreateCmd.Flags().StringVar(&runnerDescription, "description", "", "runner description")
	runnerCreateCmd.Flags().StringVar(&runnerTags, "tags", "", "comma-separated tag list")
	runnerCreateCmd.Flags().BoolVar(&runnerRunUntagged, "run-untagged", false, "allow the runner to pick up untagged jobs")
	runnerCmd.AddCommand(runnerListCmd, runnerGetCmd, runnerCreateCmd)
}
