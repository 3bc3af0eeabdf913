// Package main provides the figo binary entry point. Figo is a client
// toolkit for FIWARE NGSI-v2 platforms: context broker, IoT agent, and
// QuantumLeap access plus ontology vocabulary tooling.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fiware-community/figo/commands"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "figo"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &commands.App{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "FIWARE NGSI-v2 client toolkit",
		Long: `Figo talks to FIWARE NGSI-v2 platforms: the Orion context broker,
IoT agents, and the QuantumLeap time series API.

It also parses OWL/RDFS ontologies into a vocabulary usable for modelling
context entities, and can relay NGSI notifications onto NATS.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(commands.NewCheckCommand(app))
	cmd.AddCommand(commands.NewEntitiesCommand(app))
	cmd.AddCommand(commands.NewSubscriptionsCommand(app))
	cmd.AddCommand(commands.NewVocabularyCommand(app))
	cmd.AddCommand(commands.NewNotifyCommand(app))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
