package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "List and create merge/pull request comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list <merge-request-id>",
	Short: "List comments on a merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.CommentMergeRequest().List(id, listArgs())
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var commentBody string

var commentCreateCmd = &cobra.Command{
	Use:   "create <merge-request-id>",
	Short: "Create a comment on a merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.CommentMergeRequest().Create(id, commentBody)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	addListFlags(commentListCmd)
	commentCreateCmd.Flags().StringVar(&commentBody, "body", "", "comment body")
	_ = commentCreateCmd.MarkFlagRequired("body")
	commentCmd.AddCommand(commentListCmd, commentCreateCmd)
}
