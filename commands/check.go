package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand probes the configured FIWARE components.
func NewCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity to the configured FIWARE components",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPlatformClient(app)
			if err != nil {
				return err
			}

			if err := c.CheckConnections(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			version, err := c.CB.GetVersion(cmd.Context())
			if err == nil && version.Orion.Version != "" {
				fmt.Fprintf(out, "context broker: ok (orion %s)\n", version.Orion.Version)
			} else {
				fmt.Fprintln(out, "context broker: ok")
			}
			if c.IoTA != nil {
				fmt.Fprintln(out, "iot agent: ok")
			}
			if c.QL != nil {
				fmt.Fprintln(out, "quantum leap: ok")
			}
			return nil
		},
	}
}
