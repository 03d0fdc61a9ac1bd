package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanixdarker/gqldoc/internal/openapi"
	"github.com/sanixdarker/gqldoc/internal/swagger"
	"github.com/sanixdarker/gqldoc/pkg/reference"
	"github.com/spf13/cobra"
)

var (
	generateOutput    string
	generateFormat    string
	generateReference string
	generateStrict    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Swagger document",
	Long: `Generate the Swagger 2.0 document described by the config.

Usecases that cannot be composed are reported and left out of the
document. Use --strict to fail instead.

Examples:
  gqldoc generate -o swagger.json
  gqldoc generate -c docs/gqldoc.yml -o swagger.yaml
  gqldoc generate -i https://api.example.com/graphql --format yaml
  gqldoc generate -o swagger.json --reference REFERENCE.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(generateFormat, generateOutput)
		if err != nil {
			return err
		}

		application, err := newApp(0)
		if err != nil {
			return err
		}
		defer application.Close()

		doc, genErr := application.Generate(cmd.Context())
		if doc == nil {
			return genErr
		}
		if genErr != nil {
			if generateStrict {
				return fmt.Errorf("generation failed: %w", genErr)
			}
			printWarnings(cmd.ErrOrStderr(), genErr)
		}

		out, err := swagger.Encode(doc, format)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, generateOutput, out); err != nil {
			return err
		}

		if generateReference != "" {
			ref := openapi.BuildReference(doc)
			if err := os.WriteFile(generateReference, []byte(reference.Render(ref)+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write reference file: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), styles.Success.Render("reference written to "+generateReference))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default stdout)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format: json or yaml (default from the output extension, else json)")
	generateCmd.Flags().StringVarP(&generateReference, "reference", "r", "", "Also write a Markdown reference to this path")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "Fail when any usecase cannot be composed")

	rootCmd.AddCommand(generateCmd)
}

// outputFormat resolves the encoding from the flag, then the output file
// extension.
func outputFormat(flag, output string) (swagger.Format, error) {
	switch strings.ToLower(flag) {
	case "json":
		return swagger.FormatJSON, nil
	case "yaml", "yml":
		return swagger.FormatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q, expected json or yaml", flag)
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".yaml", ".yml":
		return swagger.FormatYAML, nil
	}
	return swagger.FormatJSON, nil
}

func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), styles.Success.Render("document written to "+path))
	return nil
}

func printWarnings(w io.Writer, err error) {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	fmt.Fprintln(w, styles.Warn.Render(fmt.Sprintf("%d usecase(s) skipped:", len(errs))))
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	if errors.Is(err, openapi.ErrMalformedQuery) {
		fmt.Fprintln(w, styles.Muted.Render("  queries must look like query.<field> or mutation.<field>"))
	}
}
