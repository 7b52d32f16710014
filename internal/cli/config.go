package cli

import (
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dotwalk/pkg/cache"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/pipeline"
	"github.com/matzehuels/dotwalk/pkg/server"
)

// Config is the TOML config file. Command-line flags override it.
//
//	[render]
//	fontname = "Helvetica"
//	format = "svg"
//	layout = "neato"
//	no_edge_labels = true
//
//	[cache]
//	redis = "localhost:6379"
//	ttl = "6h"
//
//	[server]
//	addr = ":9090"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format       string `toml:"format"`
	Layout       string `toml:"layout"`
	Fontname     string `toml:"fontname"`
	Dark         bool   `toml:"dark"`
	NoNodeLabels bool   `toml:"no_node_labels"`
	NoEdgeLabels bool   `toml:"no_edge_labels"`
	NoNodeStyles bool   `toml:"no_node_styles"`
	NoEdgeStyles bool   `toml:"no_edge_styles"`
	NoNodeColors bool   `toml:"no_node_colors"`
	NoEdgeColors bool   `toml:"no_edge_colors"`
	NoArrows     bool   `toml:"no_arrows"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Dir   string   `toml:"dir"`   // file cache directory, default $XDG_CACHE_HOME/dotwalk
	Redis string   `toml:"redis"` // host:port, replaces the file cache when set
	TTL   duration `toml:"ttl"`
}

// ServerConfig configures dotwalk serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "90m" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("duration must be positive")
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Format: pipeline.DefaultFormat,
			Layout: pipeline.DefaultEngine,
		},
		Cache:  CacheConfig{TTL: duration{cache.DefaultTTL}},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// loadConfig reads the file named by --config, or the default config file
// when it exists. An explicitly named file must exist.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		var err error
		if path, err = configFile(); err != nil {
			return nil
		}
	}

	cfg, err := readConfig(path, c.Config)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// readConfig decodes the file at path over base. Unknown keys are errors.
func readConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return base, errs.Wrap(errs.ErrCodeIO, err, "read config %s", path)
	}

	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errs.Wrap(errs.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errs.New(errs.ErrCodeInvalidFormat, "config %s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return base, errs.Wrap(errs.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := errs.ValidateOutputFormat(cfg.Render.Format); err != nil {
		return err
	}
	if err := errs.ValidateEngine(cfg.Render.Layout); err != nil {
		return err
	}
	if cfg.Render.Fontname != "" {
		if err := errs.ValidateFontname(cfg.Render.Fontname); err != nil {
			return err
		}
	}
	return nil
}

// options returns the pipeline options described by the render section.
func (r RenderConfig) options(ttl time.Duration) pipeline.Options {
	return pipeline.Options{
		Format:       r.Format,
		Engine:       r.Layout,
		Fontname:     r.Fontname,
		Dark:         r.Dark,
		NoNodeLabels: r.NoNodeLabels,
		NoEdgeLabels: r.NoEdgeLabels,
		NoNodeStyles: r.NoNodeStyles,
		NoEdgeStyles: r.NoEdgeStyles,
		NoNodeColors: r.NoNodeColors,
		NoEdgeColors: r.NoEdgeColors,
		NoArrows:     r.NoArrows,
		TTL:          ttl,
	}
}
