package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barun-bash/figma-to-react/internal/errors"
)

func TestParseFigmaURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		fileKey string
		nodeID  string
		wantErr bool
	}{
		{name: "design URL", url: "https://www.figma.com/design/ABC123/MyDesign", fileKey: "ABC123"},
		{name: "file URL", url: "https://www.figma.com/file/XYZ789/Project", fileKey: "XYZ789"},
		{name: "design URL with node-id", url: "https://www.figma.com/design/ABC123/MyDesign?node-id=1-2", fileKey: "ABC123", nodeID: "1:2"},
		{name: "board URL", url: "https://www.figma.com/board/BOARD1/Canvas", fileKey: "BOARD1"},
		{name: "branch URL", url: "https://www.figma.com/design/ABC123/branch/BRANCH456/MyDesign", fileKey: "BRANCH456"},
		{name: "no scheme", url: "figma.com/design/NOPREFIX/Test", fileKey: "NOPREFIX"},
		{name: "invalid host", url: "https://example.com/design/ABC/Test", wantErr: true},
		{name: "lookalike host", url: "https://notfigma.com/design/ABC/Test", wantErr: true},
		{name: "too short", url: "https://figma.com/design", wantErr: true},
		{name: "unsupported type", url: "https://figma.com/proto/ABC/Test", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fk, nid, err := ParseFigmaURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.fileKey, fk)
			assert.Equal(t, tt.nodeID, nid)
		})
	}
}

func TestResolveFileKey(t *testing.T) {
	key, err := ResolveFileKey(" ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", key)

	key, err = ResolveFileKey("https://www.figma.com/design/XYZ/Name")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", key)

	_, err = ResolveFileKey("")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

// newTestClient points a client at srv with no rate limit and instant retries.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(ClientOptions{Token: "test-token", BaseURL: srv.URL, MaxRetries: 3, UserAgent: "figma-to-react/test"})
	c.HTTPClient = srv.Client()
	c.backoff = func(int, string) time.Duration { return time.Millisecond }
	return c
}

const fileJSON = `{
  "name": "Design System",
  "lastModified": "2025-01-01T00:00:00Z",
  "document": {"id": "0:0", "type": "DOCUMENT", "children": [
    {"id": "0:1", "name": "Page 1", "type": "CANVAS", "children": [
      {"id": "1:1", "name": "Login Modal", "type": "COMPONENT", "description": "modal"},
      {"id": "1:2", "name": "Buttons", "type": "COMPONENT_SET", "children": [
        {"id": "1:3", "name": "Variant=Primary", "type": "COMPONENT"}
      ]},
      {"id": "1:4", "name": "Frame", "type": "FRAME", "children": [
        {"id": "1:5", "name": "Card", "type": "COMPONENT"}
      ]}
    ]},
    {"id": "0:2", "name": "Page 2", "type": "CANVAS", "children": [
      {"id": "1:1", "name": "Login Modal", "type": "COMPONENT"}
    ]}
  ]}
}`

func TestClientListComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/KEY", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-FIGMA-TOKEN"))
		assert.Equal(t, "figma-to-react/test", r.Header.Get("User-Agent"))
		w.Write([]byte(fileJSON))
	}))
	defer srv.Close()

	refs, err := newTestClient(srv).ListComponents(context.Background(), "KEY")
	require.NoError(t, err)

	var ids []string
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"1:1", "1:2", "1:3", "1:5", "1:1"}, ids, "document order, duplicates kept")
	assert.Equal(t, "COMPONENT_SET", refs[1].Kind)
	assert.Equal(t, "modal", refs[0].Description)
}

func TestClientGetFileMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("depth"))
		w.Write([]byte(`{"name": "Test File", "lastModified": "2025-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	meta, err := newTestClient(srv).GetFileMetadata(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, "Test File", meta.Name)
	assert.Equal(t, "2025-01-01T00:00:00Z", meta.LastModified)
}

func TestClientNodeDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("ids") {
		case "1:1":
			w.Write([]byte(`{"nodes": {"1:1": {"document": {"id": "1:1", "name": "Card", "type": "COMPONENT"}}}}`))
		case "1:2":
			w.Write([]byte(`{"nodes": {"1:2": null}}`))
		case "1:3":
			w.Write([]byte(`{"nodes": {"1:3": {"document": {"id": "1:3", "name": "Bad", "type": "WIDGET"}}}}`))
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	n, err := c.NodeDetail(context.Background(), "KEY", "1:1")
	require.NoError(t, err)
	assert.Equal(t, KindComponent, n.Kind)

	_, err = c.NodeDetail(context.Background(), "KEY", "1:2")
	assert.True(t, errors.IsFetch(err), "missing node is a fetch failure: %v", err)

	_, err = c.NodeDetail(context.Background(), "KEY", "1:3")
	assert.True(t, errors.IsStructuralDecode(err), "malformed node is a decode failure: %v", err)
}

func TestClientImageURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "svg", r.URL.Query().Get("format"))
		assert.Equal(t, "1:1,1:2", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"err": null, "images": {"1:1": "https://cdn/1.svg", "1:2": null}}`))
	}))
	defer srv.Close()

	urls, err := newTestClient(srv).ImageURLs(context.Background(), "KEY", []string{"1:1", "1:2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1:1": "https://cdn/1.svg"}, urls)
}

func TestClientImageFills(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/KEY/images", r.URL.Path)
		w.Write([]byte(`{"meta": {"images": {"ref1": "https://cdn/ref1.png"}}}`))
	}))
	defer srv.Close()

	fills, err := newTestClient(srv).ImageFills(context.Background(), "KEY")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/ref1.png", fills["ref1"])
}

func TestClientRetriesRateLimit(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"name": "ok"}`))
	}))
	defer srv.Close()

	meta, err := newTestClient(srv).GetFileMetadata(context.Background(), "KEY")
	require.NoError(t, err)
	assert.Equal(t, "ok", meta.Name)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClientRateLimitExhausted(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetFileMetadata(context.Background(), "KEY")
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
	assert.EqualValues(t, 4, attempts.Load(), "one try plus MaxRetries")
}

func TestClientStatusErrors(t *testing.T) {
	for _, status := range []int{401, 403, 404, 500} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv).GetFileMetadata(context.Background(), "KEY")
			require.Error(t, err)
			assert.True(t, errors.IsFetch(err))
		})
	}
}

func TestClientNoToken(t *testing.T) {
	c := NewClient(ClientOptions{BaseURL: "http://127.0.0.1:0"})
	_, err := c.GetFileMetadata(context.Background(), "KEY")
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
	assert.Contains(t, errors.FlattenHints(err), "FIGMA_TOKEN")
}

func TestClientContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.backoff = func(int, string) time.Duration { return time.Hour }
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetFileMetadata(ctx, "KEY")
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, retryDelay(0, ""))
	assert.Equal(t, 8*time.Second, retryDelay(2, "bogus"))
	assert.Equal(t, 5*time.Second, retryDelay(0, "5"))
}
