package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List container registry repositories, tags, and image metadata",
}

var registryListCmd = &cobra.Command{
	Use:   "list-repositories",
	Short: "List container registry repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.ContainerRegistry().ListRepositories(listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var registryTagsCmd = &cobra.Command{
	Use:   "list-tags <repository-id>",
	Short: "List tags within a registry repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.ContainerRegistry().ListTags(id, listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var registryImageCmd = &cobra.Command{
	Use:   "get-image <repository-id> <tag>",
	Short: "Get per-tag image metadata",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.ContainerRegistry().GetImageMetadata(id, args[1])
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(registryListCmd)
	addListFlags(registryTagsCmd)
	registryCmd.AddCommand(registryListCmd, registryTagsCmd, registryImageCmd)
}
