// Package config loads figma-to-react settings.
//
// Values come, lowest precedence first, from built-in defaults, the user
// file ~/.figma-to-react/figma-to-react.toml, the project file
// figma-to-react.toml and FIGMA2REACT_* environment variables. The Figma
// token is also read from FIGMA_TOKEN or FIGMA_ACCESS_TOKEN and is never
// written back to disk.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/naming"
)

const (
	// FileName is the configuration file looked up in the project and user directories.
	FileName = "figma-to-react.toml"

	// UserDir is the per-user directory below $HOME.
	UserDir = ".figma-to-react"

	// EnvPrefix prefixes every environment override, e.g. FIGMA2REACT_OUTPUT_DIR.
	EnvPrefix = "FIGMA2REACT"
)

// Config holds all settings.
type Config struct {
	Figma    FigmaConfig    `mapstructure:"figma" toml:"figma"`
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Render   RenderConfig   `mapstructure:"render" toml:"render"`
	Cache    CacheConfig    `mapstructure:"cache" toml:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline" toml:"pipeline"`
}

// FigmaConfig configures the REST client.
type FigmaConfig struct {
	Token             string `mapstructure:"token" toml:"token,omitempty"`
	FileKey           string `mapstructure:"file_key" toml:"file_key"`
	APIBase           string `mapstructure:"api_base" toml:"api_base"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" toml:"requests_per_minute"`
	MaxRetries        int    `mapstructure:"max_retries" toml:"max_retries"`
}

// Timeout returns the per-request timeout.
func (f FigmaConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// OutputConfig says where generated files go.
type OutputConfig struct {
	Dir              string `mapstructure:"dir" toml:"dir"`
	StylesDir        string `mapstructure:"styles_dir" toml:"styles_dir"`
	DownloadPreviews bool   `mapstructure:"download_previews" toml:"download_previews"`
}

// RenderConfig tunes the transpiler.
type RenderConfig struct {
	MaxDepth       int    `mapstructure:"max_depth" toml:"max_depth"`
	Collision      string `mapstructure:"collision" toml:"collision"`
	VocabularyFile string `mapstructure:"vocabulary_file" toml:"vocabulary_file"`
}

// CacheConfig controls the on-disk API response cache.
type CacheConfig struct {
	Dir         string `mapstructure:"dir" toml:"dir"`
	Enabled     bool   `mapstructure:"enabled" toml:"enabled"`
	MaxAgeHours int    `mapstructure:"max_age_hours" toml:"max_age_hours"`
}

// MaxAge returns how long a cache entry stays fresh.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}

// PipelineConfig sizes the batch worker pool.
type PipelineConfig struct {
	Workers int `mapstructure:"workers" toml:"workers"`
}

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("figma.file_key", "")
	v.SetDefault("figma.api_base", "https://api.figma.com/v1")
	v.SetDefault("figma.timeout_seconds", 30)
	v.SetDefault("figma.requests_per_minute", 60)
	v.SetDefault("figma.max_retries", 3)

	v.SetDefault("output.dir", "src/components")
	v.SetDefault("output.styles_dir", "styles")
	v.SetDefault("output.download_previews", false)

	v.SetDefault("render.max_depth", 64)
	v.SetDefault("render.collision", "accept")
	v.SetDefault("render.vocabulary_file", "")

	v.SetDefault("cache.dir", ".figma-cache")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_age_hours", 24)

	v.SetDefault("pipeline.workers", 4)
}

// BindEnv wires the prefixed environment overrides and the conventional
// token variables. The first variable that is set wins.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("figma.token", EnvPrefix+"_FIGMA_TOKEN", "FIGMA_TOKEN", "FIGMA_ACCESS_TOKEN")
}

// NewViper returns a viper instance with defaults, config files found for
// projectDir, and environment bindings applied.
func NewViper(projectDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	SetDefaults(v)
	BindEnv(v)

	for _, path := range searchPaths(projectDir) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "reading %s", path),
				"fix the TOML syntax or delete the file to fall back to defaults",
			)
		}
	}
	return v, nil
}

// searchPaths lists config files from lowest to highest precedence.
func searchPaths(projectDir string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, UserDir, FileName))
	}
	return append(paths, filepath.Join(projectDir, FileName))
}

// Load reads the configuration for projectDir. Missing files are not an
// error; invalid values are.
func Load(projectDir string) (*Config, error) {
	v, err := NewViper(projectDir)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper decodes and validates the settings held by v. Command-line
// flags bound to v take part here.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Figma.TimeoutSeconds <= 0:
		return errors.WithHint(errors.Newf("figma.timeout_seconds must be positive, got %d", c.Figma.TimeoutSeconds),
			"set figma.timeout_seconds to e.g. 30")
	case c.Figma.RequestsPerMinute <= 0:
		return errors.WithHint(errors.Newf("figma.requests_per_minute must be positive, got %d", c.Figma.RequestsPerMinute),
			"set figma.requests_per_minute to e.g. 60")
	case c.Figma.MaxRetries < 0:
		return errors.Newf("figma.max_retries must not be negative, got %d", c.Figma.MaxRetries)
	case c.Render.MaxDepth <= 0:
		return errors.Newf("render.max_depth must be positive, got %d", c.Render.MaxDepth)
	case c.Pipeline.Workers <= 0:
		return errors.Newf("pipeline.workers must be positive, got %d", c.Pipeline.Workers)
	case c.Output.Dir == "":
		return errors.New("output.dir must not be empty")
	}
	if _, err := c.CollisionPolicy(); err != nil {
		return errors.Wrap(err, "render.collision")
	}
	return nil
}

// CollisionPolicy parses render.collision.
func (c *Config) CollisionPolicy() (codegen.CollisionPolicy, error) {
	return codegen.ParseCollisionPolicy(c.Render.Collision)
}

// RequireToken returns the Figma token or an error explaining how to set one.
func (c *Config) RequireToken() (string, error) {
	if c.Figma.Token == "" {
		return "", errors.WithHint(errors.New("no Figma access token configured"),
			"export FIGMA_TOKEN=<personal access token> or set figma.token in "+FileName)
	}
	return c.Figma.Token, nil
}

// Vocabulary returns the built-in vocabulary overlaid with
// render.vocabulary_file when one is configured. Relative paths resolve
// against projectDir.
func (c *Config) Vocabulary(projectDir string) (naming.Vocabulary, error) {
	vocab := naming.DefaultVocabulary()
	path := c.Render.VocabularyFile
	if path == "" {
		return vocab, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectDir, path)
	}
	extra, err := naming.LoadVocabulary(path)
	if err != nil {
		return naming.Vocabulary{}, errors.WithHint(err, "check render.vocabulary_file")
	}
	return vocab.Merge(extra), nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// WriteDefault writes the built-in configuration to path. An existing file
// is only replaced when force is set. The token is never written.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}

	text, err := Encode(Defaults())
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# figma-to-react configuration\n")
	b.WriteString("# The access token is read from FIGMA_TOKEN; keep it out of this file.\n\n")
	b.WriteString(text)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Encode renders cfg as TOML with the token left out.
func Encode(cfg *Config) (string, error) {
	c := *cfg
	c.Figma.Token = ""
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Wrap(err, "encoding configuration")
	}
	return b.String(), nil
}
