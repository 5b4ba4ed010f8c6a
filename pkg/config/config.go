// Package config loads kintree settings from a TOML file.
//
// Every section is optional; missing values take the defaults of the package
// that consumes them:
//
//	[store]
//	driver = "sqlite"
//	dsn    = "family.db"
//
//	[layout]
//	mode      = "radial"
//	ring_gap  = 180
//
//	[render]
//	style = "clan"
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//	ttl        = "6h"
//
// The file is chosen by [Load]: an explicit path, else $KINTREE_CONFIG, else
// none (defaults only).
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/styles"
	"github.com/matzehuels/kintree/pkg/store"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// EnvFile names the environment variable that selects the config file.
const EnvFile = "KINTREE_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults not owned by another package.
const (
	DefaultWidth       = 1280.0
	DefaultHeight      = 800.0
	DefaultScale       = 2.0
	DefaultServerAddr  = ":8080"
	DefaultCachePrefix = "kintree:"
)

// Config is the root of the TOML document.
type Config struct {
	Store    store.Config   `toml:"store"`
	Layout   LayoutConfig   `toml:"layout"`
	Viewport ViewportConfig `toml:"viewport"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// LayoutConfig mirrors layout.Options plus the projection mode.
type LayoutConfig struct {
	Mode       string  `toml:"mode"`
	UnitWidth  float64 `toml:"unit_width"`
	CardDepth  float64 `toml:"card_depth"`
	SpouseGap  float64 `toml:"spouse_gap"`
	SiblingGap float64 `toml:"sibling_gap"`
	LevelGap   float64 `toml:"level_gap"`
	RingGap    float64 `toml:"ring_gap"`
}

// ViewportConfig mirrors viewport.Options plus the surface size.
type ViewportConfig struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	ZoomStep float64 `toml:"zoom_step"`
	Padding  float64 `toml:"padding"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
}

// RenderConfig selects the visual style and raster scale.
type RenderConfig struct {
	Style string  `toml:"style"`
	Scale float64 `toml:"scale"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `kintree serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration read from a string such as "90m".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	lo := layout.DefaultOptions()
	vo := viewport.DefaultOptions()
	return Config{
		Store: store.Config{Driver: store.DriverJSON},
		Layout: LayoutConfig{
			Mode:       layout.Vertical.String(),
			UnitWidth:  lo.UnitWidth,
			CardDepth:  lo.CardDepth,
			SpouseGap:  lo.SpouseGap,
			SiblingGap: lo.SiblingGap,
			LevelGap:   lo.LevelGap,
			RingGap:    lo.RingGap,
		},
		Viewport: ViewportConfig{
			MinScale: vo.MinScale,
			MaxScale: vo.MaxScale,
			ZoomStep: vo.ZoomStep,
			Padding:  vo.Padding,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
		},
		Render: RenderConfig{Style: "simple", Scale: DefaultScale},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  DefaultCachePrefix,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Load reads the file at path, or at $KINTREE_CONFIG when path is empty.
// With neither set the defaults are returned. Values in the file override
// the defaults field by field.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvFile)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := decode(string(data), &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Store.DSN != "" && cfg.Store.Driver != store.DriverMongo && !filepath.IsAbs(cfg.Store.DSN) {
		cfg.Store.DSN = filepath.Join(filepath.Dir(path), cfg.Store.DSN)
	}
	return cfg, cfg.Validate()
}

// Parse decodes a TOML document on top of the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func decode(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section. The store section is only checked when a
// DSN is set, since commands may supply the data file as an argument.
func (c Config) Validate() error {
	if c.Store.DSN != "" {
		if err := c.Store.Validate(); err != nil {
			return err
		}
	}
	if _, err := c.Layout.ParseMode(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.mode")
	}
	if err := c.Layout.Options().Validate(); err != nil {
		return err
	}
	if err := c.Viewport.Options().Validate(); err != nil {
		return err
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport size must not be negative")
	}
	if _, err := styles.ByName(c.Render.Style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.style")
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must not be negative")
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// ParseMode returns the configured projection.
func (l LayoutConfig) ParseMode() (layout.Mode, error) {
	return layout.ParseMode(l.Mode)
}

// Options converts the section to layout options.
func (l LayoutConfig) Options() layout.Options {
	return layout.Options{
		UnitWidth:  l.UnitWidth,
		CardDepth:  l.CardDepth,
		SpouseGap:  l.SpouseGap,
		SiblingGap: l.SiblingGap,
		LevelGap:   l.LevelGap,
		RingGap:    l.RingGap,
	}
}

// Options converts the section to viewport options.
func (v ViewportConfig) Options() viewport.Options {
	return viewport.Options{
		MinScale: v.MinScale,
		MaxScale: v.MaxScale,
		ZoomStep: v.ZoomStep,
		Padding:  v.Padding,
	}
}

// Size returns the configured surface size, falling back to the defaults.
func (v ViewportConfig) Size() viewport.Size {
	s := viewport.Size{Width: v.Width, Height: v.Height}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	return s
}

// TTLOr returns the configured TTL, or def when unset.
func (c CacheConfig) TTLOr(def time.Duration) time.Duration {
	if c.TTL.Duration > 0 {
		return c.TTL.Duration
	}
	return def
}

// Open creates the configured cache. An empty dir for the file backend means
// [DefaultCacheDir].
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "connect to redis at %s", c.RedisAddr)
		}
		return rc, nil
	default:
		dir := c.Dir
		if dir == "" {
			d, err := DefaultCacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// DefaultCacheDir follows XDG: $XDG_CACHE_HOME/kintree or ~/.cache/kintree.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "kintree"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "kintree"), nil
}
