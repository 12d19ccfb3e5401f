package config

import (
	"testing"

	"github.com/matzehuels/bpmndot/pkg/errors"
	"github.com/matzehuels/bpmndot/pkg/pipeline"
)

func TestLoadTOML(t *testing.T) {
	f, err := Load("testdata/bpmndot.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	opts := pipeline.Options{Input: "order.bpmn", ShowPackageNames: true}
	f.Apply(&opts)

	if len(opts.Formats) != 2 || opts.Formats[0] != "dot" || opts.Formats[1] != "svg" {
		t.Errorf("Formats = %v, want [dot svg]", opts.Formats)
	}
	if !opts.ShowFlows {
		t.Error("ShowFlows = false, want true")
	}
	if opts.ShowPackageNames {
		t.Error("explicit false in the file should override ShowPackageNames")
	}
	if opts.ExceptionSubprocessName != "On Error" {
		t.Errorf("ExceptionSubprocessName = %q", opts.ExceptionSubprocessName)
	}
	if opts.PNGScale != 3 {
		t.Errorf("PNGScale = %g, want 3", opts.PNGScale)
	}

	if f.CacheBackend() != BackendRedis {
		t.Errorf("CacheBackend() = %q, want redis", f.CacheBackend())
	}
	redis := f.Cache.Redis.Options()
	if redis.Addr != "localhost:6379" || redis.DB != 2 || redis.Prefix != "team:" {
		t.Errorf("redis options = %+v", redis)
	}
}

func TestLoadYAML(t *testing.T) {
	f, err := Load("testdata/bpmndot.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	opts := pipeline.Options{Input: "order.bpmn", ShowFlows: true}
	f.Apply(&opts)

	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if !opts.ShowFlows {
		t.Error("unset keys should leave options untouched")
	}
	if !opts.ShowTaskListeners || !opts.ShowErrorHandling {
		t.Errorf("listener/error flags not applied: %+v", opts)
	}
	if f.CacheBackend() != BackendNone {
		t.Errorf("CacheBackend() = %q, want none", f.CacheBackend())
	}
}

func TestParseEmpty(t *testing.T) {
	for name, parse := range map[string]func([]byte) (*File, error){
		"toml": ParseTOML,
		"yaml": ParseYAML,
	} {
		t.Run(name, func(t *testing.T) {
			f, err := parse(nil)
			if err != nil {
				t.Fatalf("parse(empty) error = %v", err)
			}
			opts := pipeline.Options{}
			f.Apply(&opts)
			if len(opts.Formats) != 0 || opts.ShowFlows {
				t.Errorf("empty config changed options: %+v", opts)
			}
			if f.CacheBackend() != BackendFile {
				t.Errorf("CacheBackend() = %q, want file", f.CacheBackend())
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", "testdata/nope.toml", errors.ErrCodeFileNotFound},
		{"unknown key", "testdata/unknown_key.toml", errors.ErrCodeInvalidConfig},
		{"extension", "testdata/bpmndot.ini", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%s) error = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad format", "formats = [\"gif\"]"},
		{"negative scale", "png_scale = -1.0"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"syntax", "show_flows = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("ParseTOML(%q) error = %v, want INVALID_CONFIG", tt.data, err)
			}
		})
	}

	if _, err := ParseYAML([]byte("show_flow: true\n")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ParseYAML unknown key error = %v, want INVALID_CONFIG", err)
	}
}
