// Package config holds settings of the issvg tools.
// Values come from (in order of precedence): a YAML preset, command line flags,
// ISSVG_* environment variables (a .env file is loaded if present), defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	issvg "github.com/gucio321/issvg/pkg"
)

// Config is the full tool configuration. It doubles as the preset format.
type Config struct {
	InputFilePath   string `yaml:"input"`
	Listen          string `yaml:"listen"`
	MaxSize         int64  `yaml:"max_size"`
	MaxInflatedSize int64  `yaml:"max_inflated_size"`
	MaxDepth        int    `yaml:"max_depth"`
	Window          int    `yaml:"window"`
	NoSVGZ          bool   `yaml:"no_svgz"`
	StringOnly      bool   `yaml:"string_only"`
	Quiet           bool   `yaml:"quiet"`
	Debug           bool   `yaml:"debug"`

	preset     string
	makePreset bool
}

// Default returns configuration with library defaults.
func Default() *Config {
	return &Config{
		MaxSize:         issvg.DefaultMaxSize,
		MaxInflatedSize: issvg.DefaultMaxInflatedSize,
		MaxDepth:        issvg.DefaultMaxDepth,
		Window:          issvg.DefaultWindow,
	}
}

// FromEnv overrides c with ISSVG_* environment variables.
// .env in the working directory is loaded first (best effort).
func (c *Config) FromEnv() error {
	_ = godotenv.Load()

	c.InputFilePath = envString("ISSVG_INPUT", c.InputFilePath)
	c.Listen = envString("ISSVG_LISTEN", c.Listen)

	var err error
	if c.MaxSize, err = envInt64("ISSVG_MAX_SIZE", c.MaxSize); err != nil {
		return err
	}

	if c.MaxInflatedSize, err = envInt64("ISSVG_MAX_INFLATED_SIZE", c.MaxInflatedSize); err != nil {
		return err
	}

	depth, err := envInt64("ISSVG_MAX_DEPTH", int64(c.MaxDepth))
	if err != nil {
		return err
	}

	c.MaxDepth = int(depth)

	window, err := envInt64("ISSVG_WINDOW", int64(c.Window))
	if err != nil {
		return err
	}

	c.Window = int(window)
	c.NoSVGZ = envBool("ISSVG_NO_SVGZ", c.NoSVGZ)
	c.StringOnly = envBool("ISSVG_STRING_ONLY", c.StringOnly)
	c.Quiet = envBool("ISSVG_QUIET", c.Quiet)
	c.Debug = envBool("ISSVG_DEBUG", c.Debug)

	return nil
}

// RegisterFlags binds c's fields to fs. Current values become flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.InputFilePath, "i", c.InputFilePath, "input file path (standard input if empty)")
	fs.StringVar(&c.Listen, "listen", c.Listen, "run HTTP service on given address instead of checking a file")
	fs.Int64Var(&c.MaxSize, "max-size", c.MaxSize, "maximum input size in bytes (0 = unlimited)")
	fs.Int64Var(&c.MaxInflatedSize, "max-inflated-size", c.MaxInflatedSize, "maximum decompressed .svgz size in bytes (0 = unlimited)")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "maximum element nesting (0 = unlimited)")
	fs.IntVar(&c.Window, "window", c.Window, "pre-check scan window in bytes (0 = whole input)")
	fs.BoolVar(&c.NoSVGZ, "no-svgz", c.NoSVGZ, "reject gzip-compressed SVG")
	fs.BoolVar(&c.StringOnly, "string-only", c.StringOnly, "accept only uncompressed SVG")
	fs.BoolVar(&c.Quiet, "q", c.Quiet, "no log output, exit code only")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log rejection details")
	fs.StringVar(&c.preset, "preset", "", "YAML preset file path. This will override all other flags")
	fs.BoolVar(&c.makePreset, "make-preset", false, "print current configuration as a preset and exit")
}

// Parse builds configuration from environment, args and an optional preset.
// A single positional argument is the input file, same as -i
// (and overrides ISSVG_INPUT).
func Parse(name string, args []string) (*Config, error) {
	c := Default()
	if err := c.FromEnv(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("too many arguments: %v", fs.Args())
	}

	if fs.NArg() == 1 {
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "i" {
				err = fmt.Errorf("both -i %s and %s given", c.InputFilePath, fs.Arg(0))
			}
		})

		if err != nil {
			return nil, err
		}

		c.InputFilePath = fs.Arg(0)
	}

	if c.preset != "" {
		if err := c.LoadPreset(c.preset); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MakePreset reports whether -make-preset was given.
func (c *Config) MakePreset() bool {
	return c.makePreset
}

// LoadPreset overrides c with values from a YAML file.
func (c *Config) LoadPreset(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read preset from %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unable to parse preset from %s: %w", path, err)
	}

	return nil
}

// Preset encodes c as YAML.
func (c *Config) Preset() ([]byte, error) {
	return yaml.Marshal(c)
}

// Classifier creates an issvg.Classifier configured by c.
func (c *Config) Classifier() *issvg.Classifier {
	result := issvg.NewClassifier().
		Window(c.Window).
		MaxSize(c.MaxSize).
		MaxInflatedSize(c.MaxInflatedSize).
		MaxDepth(c.MaxDepth)

	if c.NoSVGZ {
		result.NoSVGZ()
	}

	return result
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

func envInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}

	return n, nil
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}

	return v == "1" || strings.EqualFold(v, "true")
}
