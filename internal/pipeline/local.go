package pipeline

import (
	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// RenderPayload renders one saved API response without touching the
// network. name overrides the component name; empty takes the root node's
// name. Like Run, a payload that cannot be rendered yields the fallback
// template together with the cause.
func (p *Pipeline) RenderPayload(data []byte, name string) (codegen.Artifact, figma.ComponentRef, error) {
	gen := codegen.NewGenerator(p.sanitizer, p.bank.For, codegen.Options{
		MaxDepth:  p.opts.MaxDepth,
		Collision: p.opts.Collision,
		StylesDir: p.opts.StylesDir,
	})

	node, err := figma.DecodePayload(data, p.opts.MaxDepth)
	ref := figma.ComponentRef{Name: name}
	if node != nil {
		ref.ID = node.ID
		if ref.Name == "" {
			ref.Name = node.Name
		}
	}
	if err != nil {
		p.log.Warnw("Decoding payload failed", logger.FieldComponent, ref.Name, logger.FieldError, err)
		return p.bank.For(ref), ref, errors.Wrap(err, "decoding payload")
	}

	a, err := gen.Generate(ref, node)
	return a, ref, err
}
