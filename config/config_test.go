package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/dhamidi/jparse/java/source"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NO_COLOR", "JPARSE_SOURCE", "JPARSE_ENABLE_PREVIEW", "JPARSE_CONCURRENCY", "JPARSE_NO_COLOR"} {
		t.Setenv(key, "")
	}
}

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/work", WithFs(afero.NewMemMapFs()), WithHome("/home/u"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{Source: "17", StringFolding: true, Concurrency: 8}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		env   map[string]string
		args  []string
		want  Config
	}{
		{
			name:  "project file",
			files: map[string]string{"/work/.jparse.yaml": "source: \"11\"\nconcurrency: 2\n"},
			want:  Config{Source: "11", StringFolding: true, Concurrency: 2, File: "/work/.jparse.yaml"},
		},
		{
			name:  "home file",
			files: map[string]string{"/home/u/.config/jparse/.jparse.yaml": "enable_preview: true\n"},
			want:  Config{Source: "17", EnablePreview: true, StringFolding: true, Concurrency: 8, File: "/home/u/.config/jparse/.jparse.yaml"},
		},
		{
			name:  "env over file",
			files: map[string]string{"/work/.jparse.yaml": "source: \"11\"\n"},
			env:   map[string]string{"JPARSE_SOURCE": "8"},
			want:  Config{Source: "8", StringFolding: true, Concurrency: 8, File: "/work/.jparse.yaml"},
		},
		{
			name:  "dotenv",
			files: map[string]string{"/work/.env": "JPARSE_CONCURRENCY=3\n"},
			want:  Config{Source: "17", StringFolding: true, Concurrency: 3},
		},
		{
			name:  "env over dotenv",
			files: map[string]string{"/work/.env": "JPARSE_CONCURRENCY=3\n"},
			env:   map[string]string{"JPARSE_CONCURRENCY": "5"},
			want:  Config{Source: "17", StringFolding: true, Concurrency: 5},
		},
		{
			name:  "flags over env",
			env:   map[string]string{"JPARSE_SOURCE": "8"},
			args:  []string{"--source", "16", "--enable-preview"},
			want:  Config{Source: "16", EnablePreview: true, StringFolding: true, Concurrency: 8},
		},
		{
			name: "NO_COLOR",
			env:  map[string]string{"NO_COLOR": "1"},
			want: Config{Source: "17", StringFolding: true, NoColor: true, Concurrency: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			flags := pflag.NewFlagSet("jparse", pflag.ContinueOnError)
			flags.String("source", "", "")
			flags.Bool("enable-preview", false, "")
			if err := flags.Parse(tt.args); err != nil {
				t.Fatalf("Parse(%v): %v", tt.args, err)
			}

			cfg, err := Load("/work", WithFs(writeFiles(t, tt.files)), WithHome("/home/u"), WithFlags(flags))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(&tt.want, cfg, cmpopts.IgnoreFields(Config{}, "File")); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
			if tt.want.File != "" && cfg.File != tt.want.File {
				t.Errorf("File = %q, want %q", cfg.File, tt.want.File)
			}
		})
	}
}

func TestLoadExplicitFile(t *testing.T) {
	clearEnv(t)
	fs := writeFiles(t, map[string]string{"/etc/jparse.yaml": "watch: true\n"})

	cfg, err := Load("/work", WithFs(fs), WithHome("/home/u"), WithFile("/etc/jparse.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Watch {
		t.Errorf("Watch = false, want true")
	}

	if _, err := Load("/work", WithFs(fs), WithHome("/home/u"), WithFile("/etc/missing.yaml")); err == nil {
		t.Error("Load(missing file) error = nil, want error")
	}
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"bad yaml", map[string]string{"/work/.jparse.yaml": "source: [\n"}},
		{"bad concurrency", map[string]string{"/work/.jparse.yaml": "concurrency: 0\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load("/work", WithFs(writeFiles(t, tt.files)), WithHome("/home/u")); err == nil {
				t.Error("Load error = nil, want error")
			}
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := &Config{Source: "1.8"}
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if level != source.JDK8 {
		t.Errorf("Level() = %v, want %v", level, source.JDK8)
	}
	opts, err := cfg.ParserOptions()
	if err != nil {
		t.Fatalf("ParserOptions: %v", err)
	}
	if len(opts) != 3 {
		t.Errorf("len(ParserOptions()) = %d, want 3", len(opts))
	}

	if _, err := (&Config{Source: "42"}).ParserOptions(); err == nil {
		t.Error("ParserOptions(42) error = nil, want error")
	}
}
