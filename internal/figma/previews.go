package figma

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// maxPreviewSize is the maximum size for a single preview download (10MB).
const maxPreviewSize = 10 * 1024 * 1024

// maxConcurrentDownloads is the worker pool size for preview downloads.
const maxConcurrentDownloads = 5

// PreviewRequest names one rendered preview to save.
type PreviewRequest struct {
	ComponentID string
	BaseName    string // file name without extension, e.g. "PrimaryButton"
	RemoteURL   string
}

// Preview is a downloaded component preview.
type Preview struct {
	ComponentID string `json:"component_id"`
	RemoteURL   string `json:"remote_url"`
	LocalPath   string `json:"local_path"`  // on disk
	PublicPath  string `json:"public_path"` // as served, e.g. /svgs/Button.svg
}

// PreviewDownloader saves rendered SVG previews under <Root>/svgs.
type PreviewDownloader struct {
	Root       string // the public directory, e.g. ./public
	HTTPClient *http.Client
}

// NewPreviewDownloader returns a downloader writing into root.
func NewPreviewDownloader(root string) *PreviewDownloader {
	return &PreviewDownloader{
		Root:       root,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Download fetches every request concurrently. A failed download is logged
// and skipped; the returned map only holds previews that were saved, keyed
// by component id.
func (d *PreviewDownloader) Download(ctx context.Context, reqs []PreviewRequest) (map[string]Preview, error) {
	dir := filepath.Join(d.Root, "svgs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating preview directory")
	}

	log := logger.ComponentLogger("figma.previews")
	out := make(map[string]Preview, len(reqs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)
	for _, r := range reqs {
		if r.RemoteURL == "" {
			continue
		}
		g.Go(func() error {
			name := r.BaseName + ".svg"
			local := filepath.Join(dir, name)
			if err := d.downloadFile(gctx, r.RemoteURL, local); err != nil {
				log.Warnw("Failed to download preview",
					logger.FieldComponentID, r.ComponentID,
					logger.FieldURL, r.RemoteURL,
					logger.FieldError, err)
				return nil
			}
			mu.Lock()
			out[r.ComponentID] = Preview{
				ComponentID: r.ComponentID,
				RemoteURL:   r.RemoteURL,
				LocalPath:   local,
				PublicPath:  "/svgs/" + name,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

// SortedPreviews returns previews ordered by component id.
func SortedPreviews(m map[string]Preview) []Preview {
	out := make([]Preview, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComponentID < out[j].ComponentID })
	return out
}

func (d *PreviewDownloader) downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "downloading")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, io.LimitReader(resp.Body, maxPreviewSize))
	return err
}
