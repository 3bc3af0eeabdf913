package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiware-community/figo/export"
	"github.com/fiware-community/figo/metric"
	"github.com/fiware-community/figo/semantics/vocabulary"
)

// NewVocabularyCommand groups the vocabulary subcommands.
func NewVocabularyCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocabulary",
		Short: "Parse, inspect, and export ontology vocabularies",
	}
	cmd.AddCommand(newVocabularyShowCommand(app))
	cmd.AddCommand(newVocabularyExportCommand(app))
	return cmd
}

// buildVocabulary parses the configured ontology directory, or the files
// given on the command line when present.
func buildVocabulary(app *App, files []string) (*vocabulary.Vocabulary, error) {
	configurator := vocabulary.NewConfigurator(
		vocabulary.WithLogger(app.Logger()),
		vocabulary.WithMetrics(metric.NewMetrics()),
	)
	voc := configurator.CreateVocabulary()

	if len(files) > 0 {
		var err error
		for _, file := range files {
			if voc, err = configurator.AddOntologyFromFile(voc, file); err != nil {
				return nil, fmt.Errorf("add %s: %w", file, err)
			}
		}
		return voc, nil
	}

	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}
	return configurator.AddOntologiesFromDir(voc, cfg.Ontology.Dir, cfg.Ontology.Pattern)
}

func newVocabularyShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ontology files...]",
		Short: "Parse ontologies and list the vocabulary elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			voc, err := buildVocabulary(app, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sources: %d\n", len(voc.Sources))
			for _, name := range voc.SourceNames() {
				fmt.Fprintf(out, "  %s (%s)\n", name, voc.Sources[name].Format)
			}

			fmt.Fprintf(out, "Elements: %d\n", len(voc.ElementIRIs()))
			for _, iri := range voc.ElementIRIs() {
				kind, _ := voc.KindOf(iri)
				fmt.Fprintf(out, "  [%s] %s", kind, voc.DisplayLabel(iri))
				if label := voc.DisplayLabel(iri); label != iri {
					fmt.Fprintf(out, " <%s>", iri)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newVocabularyExportCommand(app *App) *cobra.Command {
	var (
		formatName string
		outputPath string
		full       bool
	)

	cmd := &cobra.Command{
		Use:   "export [ontology files...]",
		Short: "Export the parsed vocabulary as Turtle, N-Triples, or JSON-LD",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			voc, err := buildVocabulary(app, args)
			if err != nil {
				return err
			}

			var opts []export.ExporterOption
			if full {
				opts = append(opts, export.WithDisabledElements())
			}
			doc, err := export.NewRDFExporter(voc, opts...).Export(format)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			return os.WriteFile(outputPath, []byte(doc), 0644)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "turtle", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&full, "full", false, "Include elements disabled in the settings")
	return cmd
}
