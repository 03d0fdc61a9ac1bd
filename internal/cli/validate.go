package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sanixdarker/gqldoc/internal/openapi"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a generated Swagger document",
	Long: `Parse a generated Swagger document and build its Swagger 2.0 model.

Checks performed:
  - Valid JSON or YAML
  - Swagger version 2.x
  - Document model builds without errors

Examples:
  gqldoc validate swagger.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]

		content, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		report, err := openapi.Validate(content)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Title.Render("Valid Swagger document: "+inputPath))
		fmt.Fprintln(out, field("Title", report.Title))
		fmt.Fprintln(out, field("Version", report.Version))
		fmt.Fprintln(out, field("Paths", strconv.Itoa(report.Paths)))
		fmt.Fprintln(out, field("Definitions", strconv.Itoa(report.Definitions)))
		if len(report.OperationIDs) > 0 {
			fmt.Fprintln(out, field("Operations", styles.Muted.Render(strings.Join(report.OperationIDs, ", "))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
