// Package commands implements the figma-to-react subcommands.
package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barun-bash/figma-to-react/internal/config"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/naming"
	"github.com/barun-bash/figma-to-react/internal/pipeline"
	"github.com/barun-bash/figma-to-react/internal/version"
)

// flagKeys maps command flags to the configuration keys they override.
// Flags only win when set on the command line.
var flagKeys = map[string]string{
	"out":               "output.dir",
	"styles-dir":        "output.styles_dir",
	"download-previews": "output.download_previews",
	"collision":         "render.collision",
	"max-depth":         "render.max_depth",
	"vocabulary":        "render.vocabulary_file",
	"workers":           "pipeline.workers",
}

// env is what every command works with after startup.
type env struct {
	cfg        *config.Config
	projectDir string
}

// loadEnv reads configuration for the --project directory and applies any
// flags the command defines and the user set.
func loadEnv(cmd *cobra.Command) (*env, error) {
	dir, _ := cmd.Flags().GetString("project")
	if dir == "" {
		dir = "."
	}

	v, err := config.NewViper(dir)
	if err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(err, "binding --%s", flag)
		}
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		v.Set("cache.enabled", false)
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, projectDir: dir}, nil
}

// path resolves p against the project directory.
func (e *env) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.projectDir, p)
}

// fileKey takes the first positional argument, falling back to
// figma.file_key.
func (e *env) fileKey(args []string) (string, error) {
	s := e.cfg.Figma.FileKey
	if len(args) > 0 {
		s = args[0]
	}
	return figma.ResolveFileKey(s)
}

// source returns the Figma client, wrapped in the disk cache unless
// caching is off.
func (e *env) source() (pipeline.Source, error) {
	token, err := e.cfg.RequireToken()
	if err != nil {
		return nil, err
	}
	client := figma.NewClient(figma.ClientOptions{
		Token:             token,
		BaseURL:           e.cfg.Figma.APIBase,
		Timeout:           e.cfg.Figma.Timeout(),
		RequestsPerMinute: e.cfg.Figma.RequestsPerMinute,
		MaxRetries:        e.cfg.Figma.MaxRetries,
		MaxDepth:          e.cfg.Render.MaxDepth,
		UserAgent:         version.UserAgent(),
	})
	if !e.cfg.Cache.Enabled {
		return client, nil
	}
	cache := &figma.Cache{Dir: e.path(e.cfg.Cache.Dir), MaxAge: e.cfg.Cache.MaxAge()}
	return figma.NewCachedSource(client, cache, e.cfg.Render.MaxDepth), nil
}

// pipeline builds a pipeline over src with the configured vocabulary,
// collision policy and worker count.
func (e *env) pipeline(src pipeline.Source, previews pipeline.PreviewFetcher) (*pipeline.Pipeline, error) {
	vocab, err := e.cfg.Vocabulary(e.projectDir)
	if err != nil {
		return nil, err
	}
	policy, err := e.cfg.CollisionPolicy()
	if err != nil {
		return nil, err
	}
	return pipeline.New(src, pipeline.Options{
		Workers:   e.cfg.Pipeline.Workers,
		MaxDepth:  e.cfg.Render.MaxDepth,
		Collision: policy,
		StylesDir: e.cfg.Output.StylesDir,
		Sanitizer: naming.NewSanitizer(vocab),
		Previews:  previews,
	}), nil
}
