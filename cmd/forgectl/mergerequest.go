package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/forge"
	"github.com/forgectl/forgectl/internal/parallel"
)

var mergeRequestCmd = &cobra.Command{
	Use:   "merge-request",
	Short: "Open, list, and act on merge/pull requests",
}

var (
	mrTitle        string
	mrDescription  string
	mrSourceBranch string
	mrTargetBranch string
	mrTargetRepo   string
	mrAssignee     string
	mrDraft        bool
	mrAmend        bool

	mrState    string
	mrReviewer string
	mrAuthor   string
)

// prepStep is one of the two independent remote lookups opening a merge
// request wants before it submits: confirming the target path still
// resolves to a project, and resolving the current user for the
// assignee default. Neither depends on the other, so they run through
// internal/parallel instead of back to back.
type prepStep struct {
	kind      string
	projectID int64
	user      forge.Member
}

var mergeRequestOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a merge/pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds := []parallel.Cmd[prepStep]{
			func() (prepStep, error) {
				id, err := rf.Project().GetIDByPath(flagPath)
				return prepStep{kind: "project", projectID: id}, err
			},
			func() (prepStep, error) {
				u, err := rf.User().Get()
				return prepStep{kind: "user", user: u}, err
			},
		}
		var currentUser forge.Member
		for r := range parallel.Run(cmds) {
			if r.Err != nil {
				return r.Err
			}
			if r.Value.kind == "user" {
				currentUser = r.Value.user
			}
		}

		description := forge.BuildDescription(mrDescription, cfg.MergeRequestDescriptionSignature)
		assignee := mrAssignee
		if assignee == "" {
			assignee = cfg.PreferredAssigneeUsername
		}
		if assignee == "" {
			assignee = currentUser.Username
		}
		resp, err := rf.MergeRequest().Open(forge.OpenMergeRequestArgs{
			Title:        mrTitle,
			Description:  description,
			SourceBranch: mrSourceBranch,
			TargetBranch: mrTargetBranch,
			TargetRepo:   mrTargetRepo,
			Draft:        mrDraft,
			Assignee:     assignee,
			Amend:        mrAmend,
		})
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var mergeRequestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List merge/pull requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := rf.MergeRequest().List(forge.MergeRequestListArgs{
			ListBodyArgs: listArgs(),
			State:        mrState,
			Assignee:     mrAssignee,
			Reviewer:     mrReviewer,
			Author:       mrAuthor,
		})
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var mergeRequestGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.MergeRequest().Get(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var mergeRequestMergeCmd = &cobra.Command{
	Use:   "merge <id>",
	Short: "Merge a merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.MergeRequest().Merge(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var mergeRequestCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.MergeRequest().Close(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

var mergeRequestApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a merge/pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		resp, err := rf.MergeRequest().Approve(id)
		if err != nil {
			return err
		}
		return printResult(resp)
	},
}

func init() {
	mergeRequestOpenCmd.Flags().StringVar(&mrTitle, "title", "", "merge request title")
	mergeRequestOpenCmd.Flags().StringVar(&mrDescription, "description", "", "merge request description")
	mergeRequestOpenCmd.Flags().StringVar(&mrSourceBranch, "source-branch", "", "source branch")
	mergeRequestOpenCmd.Flags().StringVar(&mrTargetBranch, "target-branch", "", "target branch")
	mergeRequestOpenCmd.Flags().StringVar(&mrTargetRepo, "target-repo", "", "cross-repo target path override")
	mergeRequestOpenCmd.Flags().StringVar(&mrAssignee, "assignee", "", "assignee username (defaults to config preferred_assignee_username)")
	mergeRequestOpenCmd.Flags().BoolVar(&mrDraft, "draft", false, "open as a draft")
	mergeRequestOpenCmd.Flags().BoolVar(&mrAmend, "amend", false, "amend an existing merge request on conflict")

	mergeRequestListCmd.Flags().StringVar(&mrState, "state", "", "filter by state")
	mergeRequestListCmd.Flags().StringVar(&mrAssignee, "assignee", "", "filter by assignee")
	mergeRequestListCmd.Flags().StringVar(&mrReviewer, "reviewer", "", "filter by reviewer")
	mergeRequestListCmd.Flags().StringVar(&mrAuthor, "author", "", "filter by author")
	addListFlags(mergeRequestListCmd)

	mergeRequestCmd.AddCommand(mergeRequestOpenCmd, mergeRequestListCmd, mergeRequestGetCmd, mergeRequestMergeCmd, mergeRequestCloseCmd, mergeRequestApproveCmd)
}
