// Package config loads jparse settings from a .jparse.yaml file, a .env
// file, JPARSE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dhamidi/jparse/java/parser"
	"github.com/dhamidi/jparse/java/source"
)

var AppFs = afero.NewOsFs()

const (
	configName = ".jparse"
	envPrefix  = "JPARSE"
)

// Config holds the settings shared by every command.
type Config struct {
	Source        string
	EnablePreview bool
	StringFolding bool
	NoColor       bool
	Concurrency   int
	Watch         bool

	// File is the config file that was read, if any.
	File string
}

type options struct {
	fs    afero.Fs
	home  string
	file  string
	flags *pflag.FlagSet
}

type Option func(*options)

// WithFs reads the config and .env files from fs instead of AppFs.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithHome sets the home directory searched for a config file.
func WithHome(dir string) Option {
	return func(o *options) {
		o.home = dir
	}
}

// WithFile reads path instead of searching for a config file. The file must
// exist.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFlags lets changed flags override every other source. Flags are
// matched by name with dashes in place of underscores, for example
// --enable-preview for enable_preview.
func WithFlags(flags *pflag.FlagSet) Option {
	return func(o *options) {
		o.flags = flags
	}
}

var keys = []string{"source", "enable_preview", "string_folding", "no_color", "concurrency", "watch"}

// Load reads the configuration for a run in dir. A missing config file is
// not an error.
func Load(dir string, opts ...Option) (*Config, error) {
	o := &options{fs: AppFs}
	for _, opt := range opts {
		opt(o)
	}
	if o.home == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		o.home = home
	}

	if err := loadDotEnv(o.fs, filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(o.fs)
	if o.file != "" {
		v.SetConfigFile(o.file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		v.AddConfigPath(o.home)
		v.AddConfigPath(filepath.Join(o.home, ".config", "jparse"))
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("source", source.DefaultLevel.String())
	v.SetDefault("enable_preview", false)
	v.SetDefault("string_folding", true)
	v.SetDefault("no_color", os.Getenv("NO_COLOR") != "")
	v.SetDefault("concurrency", 8)
	v.SetDefault("watch", false)

	if o.flags != nil {
		for _, key := range keys {
			if flag := o.flags.Lookup(strings.ReplaceAll(key, "_", "-")); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Source:        v.GetString("source"),
		EnablePreview: v.GetBool("enable_preview"),
		StringFolding: v.GetBool("string_folding"),
		NoColor:       v.GetBool("no_color"),
		Concurrency:   v.GetInt("concurrency"),
		Watch:         v.GetBool("watch"),
		File:          v.ConfigFileUsed(),
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	return cfg, nil
}

// loadDotEnv sets the variables of the .env file at path that are not
// already set in the environment.
func loadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	env, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, value := range env {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	return nil
}

// Level returns the configured source level.
func (c *Config) Level() (source.Level, error) {
	return source.ParseLevel(c.Source)
}

// ParserOptions returns the parser options for the configured source level
// and features.
func (c *Config) ParserOptions() ([]parser.Option, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return []parser.Option{
		parser.WithLevel(level),
		parser.WithPreview(c.EnablePreview),
		parser.WithStringFolding(c.StringFolding),
	}, nil
}
