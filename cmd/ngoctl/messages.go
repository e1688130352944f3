package main

import (
	"github.com/spf13/cobra"
)

func messagesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Exchange direct messages",
	}

	sendCmd := &cobra.Command{
		Use:   "send <to> <message>",
		Short: "Send a message",
		Args:  cobra.ExactArgs(2),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			conf, err := a.dispatch.SendMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf, "Message sent")
			return nil
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list <with>",
		Short: "Show the conversation with another account",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if _, err := a.dispatch.LoadConversation(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printMessages(cmd.OutOrStdout(), a.dispatch.State().Messages.Snapshot().Messages)
		}),
	}

	cmd.AddCommand(sendCmd, listCmd)
	return cmd
}
