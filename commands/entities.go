package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiware-community/figo/client"
	"github.com/fiware-community/figo/client/cb"
)

// NewEntitiesCommand groups the context entity subcommands.
func NewEntitiesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Query context entities on the context broker",
	}
	cmd.AddCommand(newEntitiesListCommand(app))
	cmd.AddCommand(newEntitiesGetCommand(app))
	return cmd
}

func newPlatformClient(app *App) (*client.Client, error) {
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}
	return client.New(cfg, client.WithLogger(app.Logger()))
}

func newEntitiesListCommand(app *App) *cobra.Command {
	var query cb.EntityQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities matching the filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPlatformClient(app)
			if err != nil {
				return err
			}

			entities, err := c.CB.ListEntities(cmd.Context(), query)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entities)
		},
	}

	cmd.Flags().StringVar(&query.Type, "type", "", "Entity type filter")
	cmd.Flags().StringVar(&query.IDPattern, "id-pattern", "", "Entity id regular expression")
	cmd.Flags().StringVar(&query.Q, "query", "", "Simple query expression, e.g. temperature>25")
	cmd.Flags().BoolVar(&query.KeyValues, "key-values", false, "Condensed representation")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Maximum number of entities")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "Pagination offset")
	return cmd
}

func newEntitiesGetCommand(app *App) *cobra.Command {
	var entityType string

	cmd := &cobra.Command{
		Use:   "get <entity-id>",
		Short: "Fetch one entity by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPlatformClient(app)
			if err != nil {
				return err
			}

			entity, err := c.CB.GetEntity(cmd.Context(), args[0], entityType)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(entity, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&entityType, "type", "", "Disambiguate when the id exists under several types")
	return cmd
}
