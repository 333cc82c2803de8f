package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "List pipelines and lint CI configuration",
}

var pipelineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pipelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.Cicd().List(listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var pipelineGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.Cicd().GetPipeline(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var pipelineLintFile string

var pipelineLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint a CI configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		yaml, err := os.ReadFile(pipelineLintFile)
		if err != nil {
			return err
		}
		resp, err := rf.Cicd().Lint(yaml)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(pipelineListCmd)
	pipelineLintCmd.Flags().StringVar(&pipelineLintFile, "file", "", "path to the CI configuration file to lint")
	_ = pipelineLintCmd.MarkFlagRequired("file")
	pipelineCmd.AddCommand(pipelineListCmd, pipelineGetCmd, pipelineLintCmd)
}
