package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/cmd/figma-to-react/commands"
	"github.com/barun-bash/figma-to-react/internal/cli"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "figma-to-react",
	Short: "Generate React components from a Figma file",
	Long: `figma-to-react reads the components of a Figma file and writes one
.jsx component and one stylesheet per component, plus an index.js that
exports them all. Components that cannot be rendered structurally are
written from a template and reported as warnings.

Examples:
  figma-to-react list <file-key>
  figma-to-react generate https://www.figma.com/design/<key>/App
  figma-to-react generate --select --download-previews
  figma-to-react render node.json --watch --out src/components
  figma-to-react config init`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		noColor, _ := cmd.Flags().GetBool("no-color")

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		cli.Setup(cmd.OutOrStdout(), cli.ColorEnabled && !noColor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs to stderr as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringP("project", "C", ".", "Project directory holding figma-to-react.toml")

	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
