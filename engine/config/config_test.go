package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/polymesh/engine/core"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polymesh.toml")
	doc := `
[log]
level = "debug"

[watch]
enabled = false

[output]
dir = "out"

[bridge]
kind = "registry"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Prefix != "polymesh" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Watch.Enabled || cfg.Watch.Dir != "meshes" {
		t.Errorf("watch = %+v", cfg.Watch)
	}
	if cfg.Output.Dir != "out" || cfg.Bridge.Kind != "registry" || !cfg.Normals.Recalculate {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "[log]\ncolour = true\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad bridge", "[bridge]\nkind = \"maya\"\n"},
		{"watch without dir", "[watch]\ndir = \"\"\nenabled = true\n"},
		{"no workers", "[jobs]\nworkers = 0\n"},
		{"syntax", "[log\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Decode([]byte(tt.doc), Default()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeUnknownBridgeIsSentinel(t *testing.T) {
	err := Decode([]byte("[bridge]\nkind = \"maya\"\n"), Default())
	if !errors.Is(err, core.ErrUnknownBridge) {
		t.Errorf("err = %v, want ErrUnknownBridge", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.Output.Dir = "exports"
	data, err := want.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got := &Config{}
	if err := Decode(data, got); err != nil {
		t.Fatalf("Decode: %v\n%s", err, data)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
