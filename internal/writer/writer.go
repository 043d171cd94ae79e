// Package writer persists generated components to disk.
package writer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// ManifestFile is the component index written next to the components.
const ManifestFile = "index.js"

// Writer writes artifacts below Dir.
type Writer struct {
	Dir string
}

// New returns a Writer rooted at dir.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Write saves each artifact as <Dir>/<Name>.jsx plus its stylesheet at the
// path the markup imports, then the manifest as <Dir>/index.js. It returns
// the written paths in order. Later artifacts with the same name replace
// earlier ones. An empty manifest leaves index.js untouched.
func (w *Writer) Write(artifacts []codegen.Artifact, manifest string) ([]string, error) {
	log := logger.ComponentLogger("writer")
	var written []string

	for _, a := range artifacts {
		if a.SuggestedFileBaseName == "" {
			return written, errors.New("artifact has no file name")
		}
		markupPath := filepath.Join(w.Dir, a.MarkupFile())
		stylePath, err := w.stylePath(a.StyleFile)
		if err != nil {
			return written, err
		}

		if err := writeFile(markupPath, a.MarkupSource); err != nil {
			return written, err
		}
		written = append(written, markupPath)
		if err := writeFile(stylePath, a.StyleSource); err != nil {
			return written, err
		}
		written = append(written, stylePath)
		log.Debugw("Wrote component", logger.FieldComponent, a.SuggestedFileBaseName, logger.FieldPath, markupPath)
	}

	if manifest == "" {
		return written, nil
	}
	manifestPath := filepath.Join(w.Dir, ManifestFile)
	if err := writeFile(manifestPath, manifest); err != nil {
		return written, err
	}
	written = append(written, manifestPath)
	log.Infow("Wrote components", logger.FieldCount, len(artifacts), logger.FieldPath, w.Dir)
	return written, nil
}

// stylePath resolves a stylesheet import against Dir. Imports that leave
// Dir are rejected.
func (w *Writer) stylePath(styleFile string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(styleFile))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf("stylesheet path %q is outside the output directory", styleFile)
	}
	return filepath.Join(w.Dir, rel), nil
}

func writeFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
