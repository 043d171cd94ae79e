package commands

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/internal/cli"
	"github.com/barun-bash/figma-to-react/internal/config"
)

// ConfigCmd groups configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage figma-to-react configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName,
	Long: `Init writes the built-in configuration into the project directory.
The Figma token is never written; export FIGMA_TOKEN instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("project")
		force, _ := cmd.Flags().GetBool("force")
		path := filepath.Join(dir, config.FileName)
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		pterm.Fprintln(cmd.OutOrStdout(), cli.Success("Wrote "+path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		text, err := config.Encode(e.cfg)
		if err != nil {
			return err
		}
		pterm.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
