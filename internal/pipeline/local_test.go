package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

func TestRenderPayload(t *testing.T) {
	p := New(nil, Options{StylesDir: "css"})

	a, ref, err := p.RenderPayload([]byte(headerJSON), "")
	require.NoError(t, err)
	assert.Equal(t, figma.ComponentRef{ID: "1:1", Name: "Card/Header"}, ref)
	assert.Equal(t, "CardHeader", a.SuggestedFileBaseName)
	assert.Equal(t, "./css/CardHeader.css", a.StyleFile)

	a, _, err = p.RenderPayload([]byte(`{"nodes":{"1:1":{"document":`+headerJSON+`}}}`), "Title Bar")
	require.NoError(t, err)
	assert.Equal(t, "TitleBar", a.SuggestedFileBaseName)
}

func TestRenderPayloadFallback(t *testing.T) {
	p := New(nil, Options{})

	a, ref, err := p.RenderPayload([]byte(brokenJSON), "")
	require.Error(t, err)
	assert.True(t, errors.IsStructuralDecode(err))
	assert.Equal(t, bank().For(ref), a)

	a, ref, err = p.RenderPayload([]byte("not json"), "Login Modal")
	require.Error(t, err)
	assert.Equal(t, "Login Modal", ref.Name)
	assert.Equal(t, bank().For(ref), a)
}
