package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSubscriptionsCommand groups the subscription subcommands.
func NewSubscriptionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Manage subscriptions on the context broker",
	}
	cmd.AddCommand(newSubscriptionsListCommand(app))
	cmd.AddCommand(newSubscriptionsDeleteCommand(app))
	return cmd
}

func newSubscriptionsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPlatformClient(app)
			if err != nil {
				return err
			}

			subs, err := c.CB.ListSubscriptions(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(subs)
		},
	}
}

func newSubscriptionsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <subscription-id>",
		Short: "Delete one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPlatformClient(app)
			if err != nil {
				return err
			}

			if err := c.CB.DeleteSubscription(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
