// Package pipeline turns every component of a Figma file into React
// source. It fetches node trees concurrently, renders each one through the
// codegen Generator and substitutes a fallback template for any component
// that could not be fetched or rendered. One bad component never stops the
// batch; it becomes a warning.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/fallback"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/logger"
	"github.com/barun-bash/figma-to-react/internal/naming"
)

// ManifestHeader opens the generated index.js.
const ManifestHeader = "// Auto-generated component index\n\n"

// DefaultWorkers bounds concurrent node fetches when Options.Workers is unset.
const DefaultWorkers = 4

// Source delivers design data. figma.Client and figma.CachedSource
// implement it.
type Source interface {
	ListComponents(ctx context.Context, fileKey string) ([]figma.ComponentRef, error)
	// ImageURLs maps component ids to rendered preview URLs. Ids without a
	// preview are absent from the result.
	ImageURLs(ctx context.Context, fileKey string, ids []string) (map[string]string, error)
	NodeDetail(ctx context.Context, fileKey, nodeID string) (*figma.Node, error)
}

// FillSource is implemented by sources that can resolve image fill
// references to download URLs.
type FillSource interface {
	ImageFills(ctx context.Context, fileKey string) (map[string]string, error)
}

// Flusher is implemented by sources that buffer fetched data, such as
// figma.CachedSource. Run flushes once after all nodes are fetched.
type Flusher interface {
	Flush() error
}

// PreviewFetcher saves rendered previews locally.
type PreviewFetcher interface {
	Download(ctx context.Context, reqs []figma.PreviewRequest) (map[string]figma.Preview, error)
}

// Options configures a Pipeline.
type Options struct {
	Workers   int
	MaxDepth  int
	Collision codegen.CollisionPolicy
	StylesDir string            // passed to codegen.Options
	Sanitizer *naming.Sanitizer // nil selects the default vocabulary
	Previews  PreviewFetcher    // nil skips preview download
}

// Result is the outcome of one batch.
type Result struct {
	RunID      string
	FileKey    string
	Components []figma.ComponentRef // as processed, with preview URLs attached
	Artifacts  []codegen.Artifact   // Artifacts[i] belongs to Components[i]
	Fallback   []bool               // Fallback[i] is set when Artifacts[i] is a template
	Previews   map[string]figma.Preview
	Manifest   string
	Warnings   *errors.Warnings
	Duration   time.Duration
}

// Fallbacks counts the components rendered from templates.
func (r *Result) Fallbacks() int {
	n := 0
	for _, fb := range r.Fallback {
		if fb {
			n++
		}
	}
	return n
}

// Pipeline runs batches against one Source. It is safe for concurrent use.
type Pipeline struct {
	source    Source
	opts      Options
	sanitizer *naming.Sanitizer
	bank      *fallback.Bank
	log       *zap.SugaredLogger
}

// New returns a pipeline reading from src.
func New(src Source, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = naming.NewSanitizer(naming.DefaultVocabulary())
	}
	return &Pipeline{
		source:    src,
		opts:      opts,
		sanitizer: opts.Sanitizer,
		bank:      fallback.New(opts.Sanitizer),
		log:       logger.ComponentLogger("pipeline"),
	}
}

// List returns the file's components in document order.
func (p *Pipeline) List(ctx context.Context, fileKey string) ([]figma.ComponentRef, error) {
	refs, err := p.source.ListComponents(ctx, fileKey)
	if err != nil {
		return nil, errors.Wrapf(err, "listing components of %s", fileKey)
	}
	return refs, nil
}

// Run processes components, or every component of the file when
// components is nil. It fails only when the component list cannot be
// fetched or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, fileKey string, components []figma.ComponentRef) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:    uuid.NewString(),
		FileKey:  fileKey,
		Warnings: &errors.Warnings{},
	}
	log := p.log.With(logger.FieldRunID, res.RunID, logger.FieldFileKey, fileKey)

	if components == nil {
		var err error
		if components, err = p.List(ctx, fileKey); err != nil {
			return nil, err
		}
	}
	res.Components = append([]figma.ComponentRef(nil), components...)
	log.Infow("Starting batch", logger.FieldCount, len(components))

	p.attachPreviews(ctx, res, log)
	fills := p.imageFills(ctx, res, log)

	gen := codegen.NewGenerator(p.sanitizer, p.bank.For, codegen.Options{
		MaxDepth:  p.opts.MaxDepth,
		Collision: p.opts.Collision,
		ImageURLs: fills,
		StylesDir: p.opts.StylesDir,
	})

	res.Artifacts = make([]codegen.Artifact, len(res.Components))
	res.Fallback = make([]bool, len(res.Components))
	causes := make([]error, len(res.Components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, c := range res.Components {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Artifacts[i], causes[i] = p.render(gctx, gen, fileKey, c)
			res.Fallback[i] = causes[i] != nil
			return nil
		})
	}
	waitErr := g.Wait()
	if f, ok := p.source.(Flusher); ok {
		if err := f.Flush(); err != nil {
			log.Warnw("Flushing source failed", logger.FieldError, err)
		}
	}
	if waitErr != nil {
		return nil, errors.Wrap(waitErr, "batch cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch cancelled")
	}

	for i, c := range res.Components {
		if causes[i] == nil {
			continue
		}
		msg := "rendered from fallback template"
		if errors.IsFetch(causes[i]) {
			msg = "node data unavailable, rendered from fallback template"
		}
		res.Warnings.AddWarning(c.Name, msg, causes[i])
	}
	p.checkDuplicateNames(res)

	res.Manifest = Manifest(res.Artifacts)
	res.Duration = time.Since(start)
	log.Infow("Finished batch",
		logger.FieldCount, len(res.Artifacts),
		"fallbacks", res.Fallbacks(),
		logger.FieldDurationMS, res.Duration.Milliseconds())
	return res, nil
}

// render fetches one node tree and generates its artifact. A non-nil error
// means the returned artifact is the fallback template.
func (p *Pipeline) render(ctx context.Context, gen *codegen.Generator, fileKey string, c figma.ComponentRef) (codegen.Artifact, error) {
	log := p.log.With(logger.FieldComponentID, c.ID, logger.FieldComponent, c.Name)

	node, err := p.source.NodeDetail(ctx, fileKey, c.ID)
	if err != nil {
		log.Warnw("Fetching node failed", logger.FieldError, err)
		return p.bank.For(c), err
	}
	a, err := gen.Generate(c, node)
	if err != nil {
		log.Warnw("Rendering node failed", logger.FieldError, err)
		return a, err
	}
	log.Debugw("Rendered component")
	return a, nil
}

// attachPreviews looks up rendered preview URLs and, when a PreviewFetcher
// is configured, replaces them with the local public paths. Failures only
// produce warnings.
func (p *Pipeline) attachPreviews(ctx context.Context, res *Result, log *zap.SugaredLogger) {
	if len(res.Components) == 0 {
		return
	}
	ids := make([]string, len(res.Components))
	for i, c := range res.Components {
		ids[i] = c.ID
	}

	urls, err := p.source.ImageURLs(ctx, res.FileKey, ids)
	if err != nil {
		log.Warnw("Fetching preview URLs failed", logger.FieldError, err)
		res.Warnings.AddWarning("", "preview images unavailable", err)
		return
	}
	for i := range res.Components {
		res.Components[i].ImageURL = urls[res.Components[i].ID]
	}

	if p.opts.Previews == nil {
		return
	}
	var reqs []figma.PreviewRequest
	for _, c := range res.Components {
		if c.ImageURL == "" {
			continue
		}
		reqs = append(reqs, figma.PreviewRequest{
			ComponentID: c.ID,
			BaseName:    p.sanitizer.ComponentName(c.Name),
			RemoteURL:   c.ImageURL,
		})
	}
	previews, err := p.opts.Previews.Download(ctx, reqs)
	if err != nil {
		res.Warnings.AddWarning("", "downloading previews failed", err)
		return
	}
	res.Previews = previews
	for i, c := range res.Components {
		if pv, ok := previews[c.ID]; ok {
			res.Components[i].ImageURL = pv.PublicPath
		}
	}
	log.Infow("Downloaded previews", logger.FieldCount, len(previews))
}

func (p *Pipeline) imageFills(ctx context.Context, res *Result, log *zap.SugaredLogger) map[string]string {
	fs, ok := p.source.(FillSource)
	if !ok {
		return nil
	}
	fills, err := fs.ImageFills(ctx, res.FileKey)
	if err != nil {
		log.Warnw("Fetching image fills failed", logger.FieldError, err)
		res.Warnings.AddWarning("", "image fills unavailable, using placeholders", err)
		return nil
	}
	return fills
}

// checkDuplicateNames flags components whose files would overwrite each other.
func (p *Pipeline) checkDuplicateNames(res *Result) {
	first := make(map[string]string, len(res.Artifacts))
	for i, a := range res.Artifacts {
		name := a.SuggestedFileBaseName
		if prev, ok := first[name]; ok {
			res.Warnings.AddHint(res.Components[i].Name,
				fmt.Sprintf("generates %s, which %q also generates", a.MarkupFile(), prev),
				"rename one of the components in Figma")
			continue
		}
		first[name] = res.Components[i].Name
	}
}

// Manifest returns the index.js source exporting every artifact in order.
func Manifest(artifacts []codegen.Artifact) string {
	var b strings.Builder
	b.WriteString(ManifestHeader)
	for _, a := range artifacts {
		fmt.Fprintf(&b, "export { default as %s } from './%s';\n", a.SuggestedFileBaseName, a.SuggestedFileBaseName)
	}
	return b.String()
}
