package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanixdarker/gqldoc/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation server",
	Long: `Start the gqldoc web server. It serves the generated document as JSON,
YAML, Markdown and a browsable HTML reference.

POST /api/reload re-reads the config and regenerates the document;
POST /api/preview composes a single usecase without publishing it.

Examples:
  gqldoc serve
  gqldoc serve --port 9090 -c docs/gqldoc.yml
  gqldoc serve -i https://api.example.com/graphql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(servePort)
		if err != nil {
			return err
		}
		defer application.Close()

		srv := server.New(cmd.Context(), application)

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-done
			application.Logger.Info("shutting down server...")
			srv.Shutdown()
		}()

		application.Logger.Info("starting server", "port", application.Config.Port)
		fmt.Fprintf(cmd.OutOrStdout(), "gqldoc running at http://localhost:%d\n", application.Config.Port)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port to listen on")

	rootCmd.AddCommand(serveCmd)
}
