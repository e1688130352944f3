package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/selectors"
	"github.com/ngoconnect/ngoconnect/internal/store"
)

func requirementsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requirements",
		Aliases: []string{"req", "reqs"},
		Short:   "Post, search, and decide requirements",
	}

	var newReq models.NewRequirement
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a requirement for your organization",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			conf, err := a.dispatch.PostRequirement(cmd.Context(), newReq)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "Requirement posted; it is visible once an admin approves it")
			return nil
		}),
	}
	postCmd.Flags().StringVar(&newReq.Item, "item", "", "Item needed")
	postCmd.Flags().StringVar(&newReq.Quantity, "quantity", "", "Quantity")
	postCmd.Flags().StringVar(&newReq.Description, "description", "", "Description")
	postCmd.Flags().StringVar(&newReq.NGOEmail, "ngo", "", "Organization email (defaults to the logged-in actor)")
	_ = postCmd.MarkFlagRequired("item")

	var (
		query remote.RequirementQuery
		text  string
	)
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search approved requirements",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if _, err := a.dispatch.SearchRequirements(cmd.Context(), query); err != nil {
				return err
			}
			results := a.dispatch.State().Requirements.Snapshot().SearchResults
			return printRequirements(cmd.OutOrStdout(), selectors.RequirementView(results, selectors.RequirementFilter{Text: text}))
		}),
	}
	searchCmd.Flags().StringVar(&query.Item, "item", "", "Item (server-side)")
	searchCmd.Flags().StringVar(&text, "text", "", "Filter item or description (local)")

	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "List the distinct items of approved requirements",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if _, err := a.dispatch.SearchRequirements(cmd.Context(), remote.RequirementQuery{}); err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), selectors.Items(a.dispatch.State().Requirements.Snapshot().SearchResults))
			return nil
		}),
	}

	var (
		mineStatus string
		mineNGO    string
	)
	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "List your organization's requirements by status",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			status := models.Status(mineStatus)
			if _, err := a.dispatch.ListOrganizationRequirements(cmd.Context(), mineNGO, status); err != nil {
				return err
			}
			snap := a.dispatch.State().Requirements.Snapshot()
			return printRequirements(cmd.OutOrStdout(), snap.Collection(collectionFor(status)))
		}),
	}
	mineCmd.Flags().StringVar(&mineStatus, "status", string(models.StatusPending), "pending, approved, or rejected")
	mineCmd.Flags().StringVar(&mineNGO, "ngo", "", "Organization email (defaults to the logged-in actor)")

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List every pending requirement (admin)",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if _, err := a.dispatch.ListPendingRequirements(cmd.Context()); err != nil {
				return err
			}
			return printRequirements(cmd.OutOrStdout(), a.dispatch.State().Requirements.Snapshot().PendingForAdmin)
		}),
	}

	approveCmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending requirement (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			conf, err := a.dispatch.ApproveRequirement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "Requirement approved")
			return nil
		}),
	}

	var reason string
	rejectCmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending requirement (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			conf, err := a.dispatch.RejectRequirement(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "Requirement rejected")
			return nil
		}),
	}
	rejectCmd.Flags().StringVar(&reason, "reason", "", "Reason shown to the organization")

	var update models.RequirementUpdate
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a requirement's item, quantity, or description",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to update: set --item, --quantity, or --description")
			}
			conf, err := a.dispatch.UpdateRequirement(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "Requirement updated")
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&update.Item, "item", "", "New item")
	updateCmd.Flags().StringVar(&update.Quantity, "quantity", "", "New quantity")
	updateCmd.Flags().StringVar(&update.Description, "description", "", "New description")

	cmd.AddCommand(postCmd, searchCmd, itemsCmd, mineCmd, pendingCmd, approveCmd, rejectCmd, updateCmd)
	return cmd
}

// collectionFor maps an organization-scoped status to the collection it fills
func collectionFor(status models.Status) store.Collection {
	switch status {
	case models.StatusApproved:
		return store.ApprovedForNgo
	case models.StatusRejected:
		return store.RejectedForNgo
	default:
		return store.PendingForNgo
	}
}
