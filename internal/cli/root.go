// Package cli provides the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sanixdarker/gqldoc/internal/app"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

var (
	rootConfig        string
	rootDebug         bool
	rootSchema        []string
	rootIntrospection string
)

var rootCmd = &cobra.Command{
	Use:   "gqldoc",
	Short: "Generate Swagger documentation for GraphQL APIs",
	Long: `gqldoc turns a GraphQL schema and a list of documented usecases into a
Swagger 2.0 document. Every usecase becomes one POST operation with an
example query, its variables and an example response.

Features:
  - Schema from SDL files or a live introspection endpoint
  - Usecases grouped into domains, inline or as Markdown files
  - JSON, YAML and Markdown reference output
  - Web server with a browsable reference`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gqldoc version %s (commit: %s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfig, "config", "c", "./gqldoc.yml", "Path to the documentation config")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringSliceVarP(&rootSchema, "schema", "s", nil, "GraphQL SDL file(s), overrides the config")
	rootCmd.PersistentFlags().StringVarP(&rootIntrospection, "introspection", "i", "", "GraphQL endpoint to introspect, overrides the config")

	rootCmd.AddCommand(versionCmd)
}

// newApp builds the application from the global flags.
func newApp(port int) (*app.App, error) {
	cfg := app.DefaultConfig()
	cfg.ConfigPath = rootConfig
	cfg.Debug = rootDebug
	cfg.Schema = rootSchema
	cfg.Introspection = rootIntrospection
	if port != 0 {
		cfg.Port = port
	}

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
