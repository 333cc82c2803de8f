package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect project metadata and membership",
}

var projectGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a project by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.Project().Get(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var projectGetIDCmd = &cobra.Command{
	Use:   "get-id <path>",
	Short: "Resolve a project path to its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := rf.Project().GetIDByPath(args[0])
		if err != nil {
			return err
		}
		return printResult(map[string]int64{"id": id})
	},
}

var projectMembersCmd = &cobra.Command{
	Use:   "members <project-id>",
	Short: "List project members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.Member().List(id, listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(projectMembersCmd)
	projectCmd.AddCommand(projectGetCmd, projectGetIDCmd, projectMembersCmd)
}
