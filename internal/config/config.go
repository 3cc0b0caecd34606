package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

// DefaultFile is the config file read when no --config flag is given
const DefaultFile = "wren.yml"

// EnvPrefix prefixes environment overrides, e.g. WREN_BASEPATH
const EnvPrefix = "WREN"

// Config represents wren.yml
type Config struct {
	Template  string      `mapstructure:"template" yaml:"template"`
	BasePath  string      `mapstructure:"basepath" yaml:"basepath"`
	Output    string      `mapstructure:"output" yaml:"output"`
	Loops     LoopConfig  `mapstructure:"loops" yaml:"loops"`
	Overrides []Override  `mapstructure:"overrides" yaml:"overrides,omitempty"`
	Keys      []KeyPolicy `mapstructure:"keys" yaml:"keys,omitempty"`
	Log       LogConfig   `mapstructure:"log" yaml:"log"`
	Hook      HookConfig  `mapstructure:"hook" yaml:"hook,omitempty"`
}

// LoopConfig holds the iteration counts of a run
type LoopConfig struct {
	Outer int `mapstructure:"outer" yaml:"outer"`
	Inner int `mapstructure:"inner" yaml:"inner"`
}

// Override replaces the default value of one template key.
// Property keys contain dots, so overrides are a list rather than a map.
type Override struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Value string `mapstructure:"value" yaml:"value"`
}

// KeyPolicy attaches substitution flags to one template key
type KeyPolicy struct {
	Key            string `mapstructure:"key" yaml:"key"`
	ClearOnZero    bool   `mapstructure:"clear_on_zero" yaml:"clear_on_zero,omitempty"`
	FirstInnerOnly bool   `mapstructure:"first_inner_only" yaml:"first_inner_only,omitempty"`
	PreviousInner  bool   `mapstructure:"previous_inner" yaml:"previous_inner,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// HookConfig describes a command run after each iteration's file is written
type HookConfig struct {
	Command string   `mapstructure:"command" yaml:"command,omitempty"`
	Args    []string `mapstructure:"args" yaml:"args,omitempty"`
	Dir     string   `mapstructure:"dir" yaml:"dir,omitempty"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Template: "model.properties",
		Output:   "{{.BasePath}}outer{{.Outer}}/inner{{.Inner}}/model.properties",
		Loops: LoopConfig{
			Outer: 1,
			Inner: 1,
		},
		Keys: []KeyPolicy{
			{Key: "simulated.vehicle.dat.file", ClearOnZero: true},
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the config file at path. Environment variables prefixed with
// WREN_ override file values (WREN_BASEPATH, WREN_LOOPS_OUTER, ...).
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("%s not found. Run 'wren init' to create one", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, oops.Wrapf(err, "failed to read %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oops.Wrapf(err, "failed to parse %s", path)
	}

	return &cfg, nil
}

// setDefaults registers every scalar key, which also makes them visible to
// AutomaticEnv during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("template", d.Template)
	v.SetDefault("basepath", d.BasePath)
	v.SetDefault("output", d.Output)
	v.SetDefault("loops.outer", d.Loops.Outer)
	v.SetDefault("loops.inner", d.Loops.Inner)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("hook.command", "")
	v.SetDefault("hook.dir", "")
}

// Validate checks the fields a run needs
func (c *Config) Validate() error {
	if c.Template == "" {
		return oops.Errorf("template is required")
	}
	if c.BasePath == "" {
		return oops.Errorf("basepath is required")
	}
	if c.Output == "" {
		return oops.Errorf("output is required")
	}
	if c.Loops.Outer < 1 || c.Loops.Inner < 1 {
		return oops.Errorf("loops.outer and loops.inner must be at least 1, got %d and %d", c.Loops.Outer, c.Loops.Inner)
	}
	for i, o := range c.Overrides {
		if strings.TrimSpace(o.Key) == "" {
			return oops.Errorf("overrides[%d] has an empty key", i)
		}
	}
	for i, k := range c.Keys {
		if strings.TrimSpace(k.Key) == "" {
			return oops.Errorf("keys[%d] has an empty key", i)
		}
	}
	return nil
}

// OverrideMap returns the overrides in the form propgen.New takes, with the
// base path under the basepath entry.
func (c *Config) OverrideMap() map[string]string {
	m := make(map[string]string, len(c.Overrides)+1)
	for _, o := range c.Overrides {
		m[o.Key] = o.Value
	}
	m[propgen.BasePathKey] = c.BasePath
	return m
}

// Policies returns the key policy table. An empty keys list keeps the
// built-in defaults.
func (c *Config) Policies() propgen.Policies {
	if len(c.Keys) == 0 {
		return propgen.DefaultPolicies()
	}
	p := make(propgen.Policies, len(c.Keys))
	for _, k := range c.Keys {
		p[strings.TrimSpace(k.Key)] = propgen.Policy{
			ClearOnZero:    k.ClearOnZero,
			FirstInnerOnly: k.FirstInnerOnly,
			PreviousInner:  k.PreviousInner,
		}
	}
	return p
}

// Save writes cfg to path as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return oops.Wrapf(err, "marshaling config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return oops.Wrapf(err, "writing %s", path)
	}
	return nil
}
