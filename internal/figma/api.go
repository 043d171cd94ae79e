package figma

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// DefaultAPIBase is the public Figma REST endpoint.
const DefaultAPIBase = "https://api.figma.com/v1"

// imageBatchSize caps how many ids go into one /images request.
const imageBatchSize = 100

// ClientOptions configures a Client. Zero values select defaults.
type ClientOptions struct {
	Token             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	MaxRetries        int
	MaxDepth          int
	UserAgent         string
}

// Client interacts with the Figma REST API. Every method returns errors
// marked as fetch failures, except NodeDetail which also reports
// structural decode failures for malformed node data.
type Client struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	MaxDepth   int
	UserAgent  string

	limiter *rate.Limiter
	backoff func(attempt int, retryAfter string) time.Duration
	log     *zap.SugaredLogger
}

// NewClient creates a Figma API client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultAPIBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60)
	}
	return &Client{
		Token:      opts.Token,
		BaseURL:    strings.TrimRight(opts.BaseURL, "/"),
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		MaxRetries: opts.MaxRetries,
		MaxDepth:   opts.MaxDepth,
		UserAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(limit, 1),
		backoff:    retryDelay,
		log:        logger.ComponentLogger("figma"),
	}
}

// FileMetadata holds lightweight file info without the full document tree.
type FileMetadata struct {
	Name         string `json:"name"`
	LastModified string `json:"lastModified"`
	Version      string `json:"version"`
}

// GetFileMetadata fetches only the file's name and lastModified timestamp.
// Much cheaper than a full file fetch (depth=1 skips the document tree).
func (c *Client) GetFileMetadata(ctx context.Context, fileKey string) (*FileMetadata, error) {
	body, err := c.get(ctx, fmt.Sprintf("/files/%s?depth=1", url.PathEscape(fileKey)))
	if err != nil {
		return nil, err
	}
	var meta FileMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, errors.Fetch(err, "parsing file metadata")
	}
	return &meta, nil
}

// listNode is the minimal shape needed to find components in a file.
type listNode struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Children    []*listNode `json:"children"`
}

// ListComponents returns every COMPONENT and COMPONENT_SET node in the file
// in document order. Variants inside a set are listed after the set; ids
// are not deduplicated.
func (c *Client) ListComponents(ctx context.Context, fileKey string) ([]ComponentRef, error) {
	body, err := c.get(ctx, fmt.Sprintf("/files/%s", url.PathEscape(fileKey)))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Document *listNode `json:"document"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Fetch(err, "parsing Figma file")
	}
	if resp.Document == nil {
		return nil, errors.Fetch(errors.New("response has no document"), "listing components")
	}

	refs := collectComponents(resp.Document)
	c.log.Debugw("Listed components", logger.FieldFileKey, fileKey, logger.FieldCount, len(refs))
	return refs, nil
}

// collectComponents walks the tree pre-order with an explicit stack so
// deeply nested files cannot exhaust the goroutine stack.
func collectComponents(root *listNode) []ComponentRef {
	var refs []ComponentRef
	stack := []*listNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Type == "COMPONENT" || n.Type == "COMPONENT_SET" {
			refs = append(refs, ComponentRef{
				ID:          n.ID,
				Name:        n.Name,
				Kind:        n.Type,
				Description: n.Description,
			})
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return refs
}

// NodeDetail fetches one node's full subtree and decodes it.
func (c *Client) NodeDetail(ctx context.Context, fileKey, nodeID string) (*Node, error) {
	body, err := c.NodeJSON(ctx, fileKey, nodeID)
	if err != nil {
		return nil, err
	}
	return DecodeNode(body, c.MaxDepth)
}

// NodeJSON fetches the raw API JSON of one node's document.
func (c *Client) NodeJSON(ctx context.Context, fileKey, nodeID string) ([]byte, error) {
	path := fmt.Sprintf("/files/%s/nodes?ids=%s", url.PathEscape(fileKey), url.QueryEscape(nodeID))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Nodes map[string]*struct {
			Document json.RawMessage `json:"document"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Fetch(err, "parsing Figma nodes")
	}
	entry, ok := resp.Nodes[nodeID]
	if !ok || entry == nil || len(entry.Document) == 0 || string(entry.Document) == "null" {
		return nil, errors.Fetch(errors.Newf("node %s not found", nodeID), "fetching node detail")
	}
	return entry.Document, nil
}

// ImageURLs asks Figma to render the given nodes as SVG. Nodes that could
// not be rendered are absent from the result.
func (c *Client) ImageURLs(ctx context.Context, fileKey string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += imageBatchSize {
		end := min(start+imageBatchSize, len(ids))
		path := fmt.Sprintf("/images/%s?ids=%s&format=svg",
			url.PathEscape(fileKey), url.QueryEscape(strings.Join(ids[start:end], ",")))
		body, err := c.get(ctx, path)
		if err != nil {
			return nil, err
		}

		var resp struct {
			Images map[string]*string `json:"images"`
			Err    *string            `json:"err"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, errors.Fetch(err, "parsing image URLs")
		}
		if resp.Err != nil && *resp.Err != "" {
			return nil, errors.Fetch(errors.Newf("figma image API error: %s", *resp.Err), "rendering images")
		}
		for id, u := range resp.Images {
			if u != nil && *u != "" {
				out[id] = *u
			}
		}
	}
	return out, nil
}

// ImageFills returns download URLs for every image fill in the file, keyed
// by image ref.
func (c *Client) ImageFills(ctx context.Context, fileKey string) (map[string]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/files/%s/images", url.PathEscape(fileKey)))
	if err != nil {
		return nil, err
	}
	var resp struct {
		Meta struct {
			Images map[string]string `json:"images"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Fetch(err, "parsing image fills")
	}
	if resp.Meta.Images == nil {
		return map[string]string{}, nil
	}
	return resp.Meta.Images, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, c.BaseURL+path)
}

// doRequest executes an authenticated GET request with retry on 429.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if c.Token == "" {
		return nil, errors.WithHint(
			errors.Fetch(errors.New("no Figma token configured"), "authenticating"),
			"set FIGMA_TOKEN or figma.token in figma-to-react.toml")
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Fetch(err, "waiting for rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, errors.Fetch(err, "creating request")
		}
		req.Header.Set("X-FIGMA-TOKEN", c.Token)
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		start := time.Now()
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, errors.Fetch(err, "figma API request failed")
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, errors.Fetch(err, "reading response")
		}

		c.log.Debugw("Figma request",
			logger.FieldURL, reqURL,
			logger.FieldStatus, resp.StatusCode,
			logger.FieldAttempt, attempt,
			logger.FieldDurationMS, time.Since(start).Milliseconds())

		switch resp.StatusCode {
		case http.StatusOK:
			return body, nil
		case http.StatusTooManyRequests:
			if attempt >= c.MaxRetries {
				return nil, errors.WithHint(
					errors.Fetch(errors.Newf("rate limit exceeded after %d retries", attempt), "figma API"),
					"lower figma.requests_per_minute or retry later")
			}
			wait := c.backoff(attempt, resp.Header.Get("Retry-After"))
			c.log.Warnw("Rate limited by Figma, backing off",
				logger.FieldAttempt, attempt+1, logger.FieldDurationMS, wait.Milliseconds())
			select {
			case <-ctx.Done():
				return nil, errors.Fetch(ctx.Err(), "waiting to retry")
			case <-time.After(wait):
			}
		case http.StatusUnauthorized:
			return nil, errors.WithHint(
				errors.Fetch(errors.New("unauthorized (401)"), "figma API"),
				"check your FIGMA_TOKEN")
		case http.StatusForbidden:
			return nil, errors.WithHint(
				errors.Fetch(errors.New("forbidden (403)"), "figma API"),
				"you may not have access to this file")
		case http.StatusNotFound:
			return nil, errors.WithHint(
				errors.Fetch(errors.New("not found (404)"), "figma API"),
				"check the file key and node id")
		default:
			return nil, errors.Fetch(errors.Newf("status %d: %s", resp.StatusCode, truncate(string(body), 200)), "figma API")
		}
	}
}

// retryDelay honors a Retry-After header in seconds and otherwise backs
// off exponentially: 2s, 4s, 8s...
func retryDelay(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Duration(math.Pow(2, float64(attempt+1))) * time.Second
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ── URL Parsing ──

// ParseFigmaURL extracts file key and optional node ID from a Figma URL.
// Supports:
//
//	https://www.figma.com/file/XXXXX/Name
//	https://www.figma.com/design/XXXXX/Name
//	https://www.figma.com/design/XXXXX/Name?node-id=1-2
//	https://www.figma.com/design/XXXXX/branch/BBBBB/Name
func ParseFigmaURL(rawURL string) (fileKey string, nodeID string, err error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", errors.Wrap(err, "invalid Figma URL")
	}

	host := strings.ToLower(u.Host)
	if host != "figma.com" && !strings.HasSuffix(host, ".figma.com") {
		return "", "", errors.Newf("not a Figma URL: host is %s", u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", "", errors.New("invalid Figma URL: expected figma.com/design/<fileKey>/...")
	}

	switch parts[0] {
	case "design", "file", "board":
	default:
		return "", "", errors.Newf("unsupported Figma URL type: %s (expected design, file, or board)", parts[0])
	}

	fileKey = parts[1]
	if len(parts) >= 4 && parts[2] == "branch" {
		fileKey = parts[3]
	}
	if fileKey == "" {
		return "", "", errors.New("could not extract file key from Figma URL")
	}

	if id := u.Query().Get("node-id"); id != "" {
		nodeID = strings.ReplaceAll(id, "-", ":")
	}
	return fileKey, nodeID, nil
}

// ResolveFileKey accepts either a bare file key or a Figma URL.
func ResolveFileKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.WithHint(errors.New("no Figma file given"),
			"pass a file key or URL, or set figma.file_key")
	}
	if strings.Contains(s, "/") {
		key, _, err := ParseFigmaURL(s)
		return key, err
	}
	return s, nil
}
