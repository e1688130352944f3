package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

func loginCmd(c *cli) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			actor, err := a.session.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", actor.Email, actor.Role)
			if a.signer.Ephemeral() && a.cfg.Session.Backend != "memory" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: session.signing_secret is not set; this session will not be restored by the next invocation")
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			a.session.Logout(cmd.Context())
			a.dispatch.State().Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in actor",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			actor := a.session.CurrentActor()
			if actor == nil {
				return errNotLoggedIn
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", actor.Email, actor.Role)
			return nil
		}),
	}
}

func registerCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
	}

	var user models.UserRegistration
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Register a user account",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			conf, err := a.session.RegisterUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "User registered")
			return nil
		}),
	}
	userCmd.Flags().StringVarP(&user.Email, "email", "e", "", "Account email")
	userCmd.Flags().StringVarP(&user.Password, "password", "p", "", "Account password")
	_ = userCmd.MarkFlagRequired("email")
	_ = userCmd.MarkFlagRequired("password")

	var org models.OrganizationRegistration
	ngoCmd := &cobra.Command{
		Use:   "ngo",
		Short: "Register an NGO (awaits admin approval)",
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			conf, err := a.session.RegisterOrganization(cmd.Context(), org)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "NGO registered")
			return nil
		}),
	}
	f := ngoCmd.Flags()
	f.StringVar(&org.Name, "name", "", "Organization name")
	f.StringVar(&org.City, "city", "", "City")
	f.StringVar(&org.FullAddress, "address", "", "Full address")
	f.StringVar(&org.Category, "category", "", "Category (e.g. Health, Education)")
	f.StringVar(&org.RegistrationID, "registration-id", "", "Government registration id")
	f.StringVar(&org.Contact, "contact", "", "Contact phone")
	f.StringVarP(&org.Email, "email", "e", "", "Login email")
	f.StringVarP(&org.Password, "password", "p", "", "Login password")
	_ = ngoCmd.MarkFlagRequired("name")
	_ = ngoCmd.MarkFlagRequired("email")
	_ = ngoCmd.MarkFlagRequired("password")

	cmd.AddCommand(userCmd, ngoCmd)
	return cmd
}
