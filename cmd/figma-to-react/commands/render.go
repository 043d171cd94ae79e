package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/internal/cli"
	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/pipeline"
	"github.com/barun-bash/figma-to-react/internal/watch"
	"github.com/barun-bash/figma-to-react/internal/writer"
)

// RenderCmd renders a saved node payload without calling the Figma API.
var RenderCmd = &cobra.Command{
	Use:   "render <node.json>",
	Short: "Render a saved Figma node payload",
	Long: `Render converts a node JSON file into a component. The file may hold a
bare node, a GET /files response or a GET /files/:key/nodes response.

Without --out the component and stylesheet are printed. With --watch the
file is rendered again every time it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := RenderCmd.Flags()
	f.StringP("out", "o", "", "Write files into this directory instead of printing them")
	f.String("name", "", "Component name (default: the root node's name)")
	f.String("styles-dir", "", "Stylesheet directory relative to the output directory")
	f.String("collision", "", "Class name collision policy: accept or suffix")
	f.Int("max-depth", 0, "Deepest node tree accepted")
	f.String("vocabulary", "", "YAML file of extra word translations")
	f.Bool("watch", false, "Render again whenever the file changes")
}

func runRender(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	p, err := e.pipeline(nil, nil)
	if err != nil {
		return err
	}

	r := renderer{
		p:      p,
		path:   args[0],
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	r.name, _ = cmd.Flags().GetString("name")
	if cmd.Flags().Changed("out") {
		r.dir = e.path(e.cfg.Output.Dir)
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return r.render()
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()
	if err := r.render(); err != nil {
		cli.PrintError(r.errOut, err)
	}
	pterm.Fprintln(r.errOut, cli.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", r.path)))
	return watch.File(ctx, r.path, watch.DefaultDebounce, r.render)
}

// renderer renders one payload file, either to a directory or to out.
type renderer struct {
	p      *pipeline.Pipeline
	path   string
	name   string
	dir    string
	out    io.Writer
	errOut io.Writer
}

func (r *renderer) render() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", r.path)
	}

	a, ref, err := r.p.RenderPayload(data, r.name)
	if err != nil {
		ws := &errors.Warnings{}
		ws.AddWarning(ref.Name, "rendered from fallback template", err)
		cli.PrintWarnings(r.errOut, ws)
	}

	if r.dir == "" {
		printArtifact(r.out, a)
		return nil
	}
	written, err := writer.New(r.dir).Write([]codegen.Artifact{a}, "")
	if err != nil {
		return err
	}
	for _, path := range written {
		pterm.Fprintln(r.out, cli.Success(path))
	}
	return nil
}

func printArtifact(out io.Writer, a codegen.Artifact) {
	fmt.Fprintf(out, "// %s\n%s\n", a.MarkupFile(), a.MarkupSource)
	fmt.Fprintf(out, "/* %s */\n%s", a.StyleFile, a.StyleSource)
}
