package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/internal/cli"
)

// ListCmd prints the components of a Figma file.
var ListCmd = &cobra.Command{
	Use:   "list [file-key-or-url]",
	Short: "List the components of a Figma file",
	Long: `List prints every COMPONENT and COMPONENT_SET of the file in document
order with its kind and node id. Without an argument the file is taken from
figma.file_key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		key, err := e.fileKey(args)
		if err != nil {
			return err
		}
		src, err := e.source()
		if err != nil {
			return err
		}
		p, err := e.pipeline(src, nil)
		if err != nil {
			return err
		}

		ctx, cancel := cli.SetupSignalHandler()
		defer cancel()

		sp := cli.StartSpinner(cmd.ErrOrStderr(), "Fetching components of "+key)
		refs, err := p.List(ctx, key)
		if err != nil {
			sp.Fail("Fetching components failed")
			return err
		}
		sp.Success(fmt.Sprintf("Found %d component(s)", len(refs)))
		if len(refs) == 0 {
			return nil
		}

		table, err := cli.ComponentTable(refs)
		if err != nil {
			return err
		}
		pterm.Fprintln(cmd.OutOrStdout(), table)
		return nil
	},
}

func init() {
	ListCmd.Flags().Bool("no-cache", false, "Bypass the on-disk API cache")
}
