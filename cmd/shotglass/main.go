// Command shotglass serves the files of a directory,
// and a generated index of its HTML pages, over HTTP.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "Error: ")
		color.New(color.Reset).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shotglass",
		Short: "A tiny HTTP server for static pages and small handlers",
		Long: `shotglass is a tiny HTTP server.

It serves files from disk at their relative paths,
optionally behind basic authentication,
listening on port 80, or 8080 in debug mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	return cmd
}
