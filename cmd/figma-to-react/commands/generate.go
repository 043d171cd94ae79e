package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/internal/cli"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/pipeline"
	"github.com/barun-bash/figma-to-react/internal/writer"
)

// GenerateCmd converts a Figma file's components into React source files.
var GenerateCmd = &cobra.Command{
	Use:   "generate [file-key-or-url]",
	Short: "Generate React components from a Figma file",
	Long: `Generate fetches every component of the file (or the ones picked with
--select), renders each into a .jsx component and a stylesheet and writes
them with an index.js into the output directory.

A component whose node data cannot be fetched or rendered is written from a
template matching its name and listed as a warning. The run only fails when the component list itself is unavailable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	f := GenerateCmd.Flags()
	f.StringP("out", "o", "", "Output directory (default output.dir)")
	f.String("styles-dir", "", "Stylesheet directory relative to the output directory")
	f.String("collision", "", "Class name collision policy: accept or suffix")
	f.IntP("workers", "w", 0, "Concurrent node fetches")
	f.Int("max-depth", 0, "Deepest node tree accepted")
	f.String("vocabulary", "", "YAML file of extra word translations")
	f.Bool("download-previews", false, "Save rendered previews under public/svgs")
	f.BoolP("select", "s", false, "Pick components interactively")
	f.StringSliceP("component", "c", nil, "Generate only the named components (repeatable)")
	f.Bool("no-cache", false, "Bypass the on-disk API cache")
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	var previews pipeline.PreviewFetcher
	if e.cfg.Output.DownloadPreviews {
		previews = figma.NewPreviewDownloader(e.path("public"))
	}
	p, err := e.pipeline(src, previews)
	if err != nil {
		return err
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	names, _ := cmd.Flags().GetStringSlice("component")
	pick, _ := cmd.Flags().GetBool("select")
	var selected []figma.ComponentRef
	if len(names) > 0 || pick {
		refs, err := p.List(ctx, key)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			selected, err = pipeline.SelectByName(refs, names)
		} else {
			selected, err = cli.SelectComponents(refs)
		}
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			pterm.Fprintln(out, cli.Muted("No components selected."))
			return nil
		}
	}

	sp := cli.StartSpinner(errOut, "Generating components from "+key)
	res, err := p.Run(ctx, key, selected)
	if err != nil {
		if ctx.Err() != nil {
			sp.Warn("Stopped")
			cli.Cancelled()
			return nil
		}
		sp.Fail("Generation failed")
		return err
	}
	msg := fmt.Sprintf("Rendered %d component(s) in %dms", len(res.Artifacts), res.Duration.Milliseconds())
	if res.Warnings.Len() > 0 {
		sp.Warn(msg)
	} else {
		sp.Success(msg)
	}
	cli.PrintWarnings(errOut, res.Warnings)

	dir := e.path(e.cfg.Output.Dir)
	written, err := writer.New(dir).Write(res.Artifacts, res.Manifest)
	if err != nil {
		return err
	}
	for _, path := range written {
		pterm.Fprintln(out, cli.Muted("  "+path))
	}
	for _, pv := range figma.SortedPreviews(res.Previews) {
		pterm.Fprintln(out, cli.Muted("  "+pv.LocalPath))
	}
	pterm.Fprintln(out, cli.Success(cli.Summary(len(res.Artifacts), res.Fallbacks(), dir)))
	return nil
}
