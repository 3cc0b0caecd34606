package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

const sample = `template: templates/model.properties
basepath: /data/run/
output: "{{.BasePath}}outer{{.Outer}}/inner{{.Inner}}/model.properties"
loops:
  outer: 2
  inner: 3
overrides:
  - key: max.hh.id
    value: "200000"
keys:
  - key: simulated.vehicle.dat.file
    clear_on_zero: true
  - key: inner.loop.abm.data.folder
    first_inner_only: true
log:
  level: debug
hook:
  command: java
  args: ["-jar", "model.jar"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wren.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "templates/model.properties", cfg.Template)
	assert.Equal(t, "/data/run/", cfg.BasePath)
	assert.Equal(t, LoopConfig{Outer: 2, Inner: 3}, cfg.Loops)
	assert.Equal(t, []Override{{Key: "max.hh.id", Value: "200000"}}, cfg.Overrides)
	require.Len(t, cfg.Keys, 2)
	assert.True(t, cfg.Keys[0].ClearOnZero)
	assert.True(t, cfg.Keys[1].FirstInnerOnly)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "java", cfg.Hook.Command)
	assert.Equal(t, []string{"-jar", "model.jar"}, cfg.Hook.Args)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "basepath: /b/\n"))
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Template, cfg.Template)
	assert.Equal(t, d.Output, cfg.Output)
	assert.Equal(t, d.Loops, cfg.Loops)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("WREN_BASEPATH", "/from/env/")
	t.Setenv("WREN_LOOPS_OUTER", "5")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "/from/env/", cfg.BasePath)
	assert.Equal(t, 5, cfg.Loops.Outer)
	assert.Equal(t, 3, cfg.Loops.Inner)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "wren.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wren init")
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "loops: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no template", func(c *Config) { c.Template = "" }, "template is required"},
		{"no basepath", func(c *Config) { c.BasePath = "" }, "basepath is required"},
		{"no output", func(c *Config) { c.Output = "" }, "output is required"},
		{"zero loops", func(c *Config) { c.Loops.Inner = 0 }, "must be at least 1"},
		{"empty override key", func(c *Config) { c.Overrides = []Override{{Key: " "}} }, "overrides[0]"},
		{"empty policy key", func(c *Config) { c.Keys = []KeyPolicy{{ClearOnZero: true}} }, "keys[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.BasePath = "/b/"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOverrideMap(t *testing.T) {
	cfg := Default()
	cfg.BasePath = "/b/"
	cfg.Overrides = []Override{{Key: "max.hh.id", Value: "1"}}

	assert.Equal(t, map[string]string{
		"max.hh.id":         "1",
		propgen.BasePathKey: "/b/",
	}, cfg.OverrideMap())
}

func TestPolicies(t *testing.T) {
	cfg := Default()
	cfg.Keys = []KeyPolicy{{Key: " a.b ", PreviousInner: true}}
	assert.Equal(t, propgen.Policies{"a.b": {PreviousInner: true}}, cfg.Policies())

	cfg.Keys = nil
	assert.Equal(t, propgen.DefaultPolicies(), cfg.Policies())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wren.yml")
	cfg := Default()
	cfg.BasePath = "/data/"
	cfg.Overrides = []Override{{Key: "max.hh.id", Value: "200000"}}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.BasePath, loaded.BasePath)
	assert.Equal(t, cfg.Output, loaded.Output)
	assert.Equal(t, cfg.Overrides, loaded.Overrides)
	assert.Equal(t, cfg.Keys, loaded.Keys)
}
