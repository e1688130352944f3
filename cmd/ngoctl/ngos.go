package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/selectors"
)

func ngosCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ngos",
		Aliases: []string{"ngo"},
		Short:   "Search and approve organizations",
	}

	var (
		query  remote.OrganizationQuery
		filter selectors.OrganizationFilter
	)
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search approved organizations",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if _, err := a.dispatch.SearchOrganizations(cmd.Context(), query); err != nil {
				return err
			}
			results := a.dispatch.State().Ngos.Snapshot().SearchResults
			return printOrganizations(cmd.OutOrStdout(), selectors.OrganizationView(results, filter))
		}),
	}
	searchCmd.Flags().StringVar(&query.City, "city", "", "City (server-side)")
	searchCmd.Flags().StringVar(&query.Name, "name", "", "Name (server-side)")
	searchCmd.Flags().StringVar(&filter.Text, "text", "", "Filter name or description (local)")
	searchCmd.Flags().StringVar(&filter.Category, "category", "", "Filter category (local)")

	citiesCmd := &cobra.Command{
		Use:   "cities",
		Short: "List the cities and categories of approved organizations",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if _, err := a.dispatch.SearchOrganizations(cmd.Context(), remote.OrganizationQuery{}); err != nil {
				return err
			}
			results := a.dispatch.State().Ngos.Snapshot().SearchResults
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Cities:")
			printList(out, selectors.Cities(results))
			fmt.Fprintln(out, "Categories:")
			printList(out, selectors.Categories(results))
			return nil
		}),
	}

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List organizations awaiting approval (admin)",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if _, err := a.dispatch.ListPendingOrganizations(cmd.Context()); err != nil {
				return err
			}
			return printOrganizations(cmd.OutOrStdout(), a.dispatch.State().Ngos.Snapshot().Pending)
		}),
	}

	approveCmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending organization (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			conf, err := a.dispatch.ApproveOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "NGO approved")
			return nil
		}),
	}

	cmd.AddCommand(searchCmd, citiesCmd, pendingCmd, approveCmd)
	return cmd
}
