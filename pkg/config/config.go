// Package config loads bpmndot settings from a TOML or YAML file.
//
// A config file holds the same switches as the command line plus the cache
// backend, so a team can check one file into the repository holding its
// process definitions:
//
//	formats = ["dot", "svg"]
//	show_flows = true
//	exception_subprocess_name = "Handle Exception"
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
// The decoder is chosen by file extension. Unknown keys are rejected so that
// a misspelt option does not silently fall back to its default.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpmndot/pkg/cache"
	"github.com/matzehuels/bpmndot/pkg/errors"
	"github.com/matzehuels/bpmndot/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// File is the decoded content of a config file. Pointer fields distinguish
// "not set" from the zero value.
type File struct {
	Formats                 []string `toml:"formats" yaml:"formats"`
	ShowFlows               *bool    `toml:"show_flows" yaml:"show_flows"`
	ShowPackageNames        *bool    `toml:"show_package_names" yaml:"show_package_names"`
	ShowTaskListeners       *bool    `toml:"show_task_listeners" yaml:"show_task_listeners"`
	ShowErrorHandling       *bool    `toml:"show_error_handling" yaml:"show_error_handling"`
	ExceptionSubprocessName string   `toml:"exception_subprocess_name" yaml:"exception_subprocess_name"`
	PNGScale                float64  `toml:"png_scale" yaml:"png_scale"`
	Cache                   Cache    `toml:"cache" yaml:"cache"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend string `toml:"backend" yaml:"backend"`
	Dir     string `toml:"dir" yaml:"dir"`
	Redis   Redis  `toml:"redis" yaml:"redis"`
}

// Redis holds the connection settings of the redis backend.
type Redis struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// Load reads and validates the config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		f, err = ParseTOML(data)
	case ".yaml", ".yml":
		f, err = ParseYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unsupported extension %q (use .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ParseTOML decodes and validates a TOML config.
func ParseTOML(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseYAML decodes and validates a YAML config.
func ParseYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks value ranges and names.
func (f *File) Validate() error {
	for i, format := range f.Formats {
		f.Formats[i] = strings.ToLower(strings.TrimSpace(format))
	}
	if err := pipeline.ValidateFormats(f.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	if f.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive, got %g", f.PNGScale)
	}
	switch f.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", f.Cache.Backend)
	}
	if f.Cache.Backend == BackendRedis && f.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	return nil
}

// Apply copies every value set in f onto opts.
func (f *File) Apply(opts *pipeline.Options) {
	if len(f.Formats) > 0 {
		opts.Formats = append([]string(nil), f.Formats...)
	}
	setBool(&opts.ShowFlows, f.ShowFlows)
	setBool(&opts.ShowPackageNames, f.ShowPackageNames)
	setBool(&opts.ShowTaskListeners, f.ShowTaskListeners)
	setBool(&opts.ShowErrorHandling, f.ShowErrorHandling)
	if f.ExceptionSubprocessName != "" {
		opts.ExceptionSubprocessName = f.ExceptionSubprocessName
	}
	if f.PNGScale != 0 {
		opts.PNGScale = f.PNGScale
	}
}

// CacheBackend returns the configured backend, file when unset.
func (f *File) CacheBackend() string {
	if f == nil || f.Cache.Backend == "" {
		return BackendFile
	}
	return f.Cache.Backend
}

// Options converts r to the redis cache settings.
func (r Redis) Options() cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		Prefix:   r.Prefix,
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
