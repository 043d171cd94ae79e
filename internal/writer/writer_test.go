package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barun-bash/figma-to-react/internal/codegen"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src", "components")
	artifacts := []codegen.Artifact{
		{MarkupSource: "jsx-a", StyleSource: "css-a", SuggestedFileBaseName: "CardHeader", StyleFile: "./styles/CardHeader.css"},
		{MarkupSource: "jsx-b", StyleSource: "css-b", SuggestedFileBaseName: "LoginModal", StyleFile: "./LoginModal.module.css"},
	}

	written, err := New(dir).Write(artifacts, "// index\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "CardHeader.jsx"),
		filepath.Join(dir, "styles", "CardHeader.css"),
		filepath.Join(dir, "LoginModal.jsx"),
		filepath.Join(dir, "LoginModal.module.css"),
		filepath.Join(dir, "index.js"),
	}, written)

	assert.Equal(t, "jsx-a", readFile(t, filepath.Join(dir, "CardHeader.jsx")))
	assert.Equal(t, "css-a", readFile(t, filepath.Join(dir, "styles", "CardHeader.css")))
	assert.Equal(t, "css-b", readFile(t, filepath.Join(dir, "LoginModal.module.css")))
	assert.Equal(t, "// index\n", readFile(t, filepath.Join(dir, "index.js")))
}

func TestWriteEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	written, err := New(dir).Write(nil, "// index\n")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "index.js")}, written)
}

func TestWriteWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("keep"), 0644))

	written, err := New(dir).Write([]codegen.Artifact{
		{MarkupSource: "jsx", StyleSource: "css", SuggestedFileBaseName: "Hero", StyleFile: "./Hero.css"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Hero.jsx"), filepath.Join(dir, "Hero.css")}, written)
	assert.Equal(t, "keep", readFile(t, filepath.Join(dir, "index.js")))
}

func TestWriteRejectsEscapingStylesheet(t *testing.T) {
	dir := t.TempDir()
	for _, styleFile := range []string{"../evil.css", "/etc/evil.css", "."} {
		_, err := New(dir).Write([]codegen.Artifact{{SuggestedFileBaseName: "X", StyleFile: styleFile}}, "")
		assert.Error(t, err, styleFile)
	}
	_, err := New(dir).Write([]codegen.Artifact{{StyleFile: "./x.css"}}, "")
	assert.Error(t, err)
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	a := codegen.Artifact{MarkupSource: "old", SuggestedFileBaseName: "Tag", StyleFile: "./styles/Tag.css"}
	_, err := New(dir).Write([]codegen.Artifact{a}, "")
	require.NoError(t, err)
	a.MarkupSource = "new"
	_, err = New(dir).Write([]codegen.Artifact{a}, "")
	require.NoError(t, err)
	assert.Equal(t, "new", readFile(t, filepath.Join(dir, "Tag.jsx")))
}
