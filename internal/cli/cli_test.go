package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

func plain(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Setup(&buf, false)
	return &buf
}

func TestFormatters(t *testing.T) {
	plain(t)
	assert.Equal(t, "✓ done", Success("done"))
	assert.Equal(t, "✗ bad", Error("bad"))
	assert.Equal(t, "⚠ careful", Warn("careful"))
	assert.Equal(t, "note", Info("note"))
}

func TestSpinnerWithoutTerminal(t *testing.T) {
	buf := plain(t)
	s := StartSpinner(buf, "Fetching components")
	s.Update("ignored")
	s.Success("Found 3 components")
	s = StartSpinner(buf, "Writing")
	s.Fail("disk full")

	assert.Equal(t, "… Fetching components\n✓ Found 3 components\n… Writing\n✗ disk full\n", buf.String())
}

func TestComponentTable(t *testing.T) {
	plain(t)
	out, err := ComponentTable([]figma.ComponentRef{
		{ID: "1:1", Name: "Card/Header", Kind: "COMPONENT"},
		{ID: "1:2", Name: "Button", Kind: "COMPONENT_SET"},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "Card/Header")
	assert.Contains(t, lines[2], "COMPONENT_SET")
}

func TestPrintWarnings(t *testing.T) {
	buf := plain(t)
	ws := &errors.Warnings{}
	ws.AddWarning("Avatar", "rendered from fallback template",
		errors.WithHint(errors.New("404"), "check the node id"))
	ws.AddHint("Card", "duplicate file name", "rename one of the components")
	PrintWarnings(buf, ws)

	out := buf.String()
	assert.Contains(t, out, "⚠ Avatar")
	assert.Contains(t, out, "rendered from fallback template: 404")
	assert.Contains(t, out, "    check the node id\n")
	assert.Contains(t, out, "ℹ Card")
	assert.Contains(t, out, "    rename one of the components\n")
}

func TestPrintError(t *testing.T) {
	buf := plain(t)
	PrintError(buf, errors.WithHint(errors.New("no token"), "export FIGMA_TOKEN"))
	assert.Equal(t, "✗ no token\n  hint: export FIGMA_TOKEN\n", buf.String())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Generated 3 component(s) in out", Summary(3, 0, "out"))
	assert.Equal(t, "Generated 3 component(s) in out (1 from templates)", Summary(3, 1, "out"))
}

func TestPickByLabel(t *testing.T) {
	refs := []figma.ComponentRef{
		{ID: "1", Name: "A", Kind: "COMPONENT"},
		{ID: "2", Name: "B", Kind: "COMPONENT"},
		{ID: "3", Name: "C", Kind: "COMPONENT_SET"},
	}
	labels := OptionLabels(refs)
	assert.Equal(t, "C (COMPONENT_SET) 3", labels[2])

	got := PickByLabel(refs, []string{labels[2], labels[0]})
	assert.Equal(t, []figma.ComponentRef{refs[0], refs[2]}, got, "original order")
	assert.Empty(t, PickByLabel(refs, nil))
	assert.NotNil(t, PickByLabel(refs, nil))
}
