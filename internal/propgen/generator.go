package propgen

import (
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

// Generator produces properties files from one template. Its template view
// is immutable; every Resolve works on a fresh copy.
type Generator struct {
	tmpl      *Template
	basePath  string
	overrides []Entry // Keyed by the template key they replace
	class     Classification
	policies  map[string]Policy // Keyed by template key, flags only
	log       logger.Logger
}

// Option configures a Generator
type Option func(*options)

type options struct {
	policies Policies
	log      logger.Logger
}

// WithPolicies replaces the default key policy table
func WithPolicies(p Policies) Option {
	return func(o *options) {
		o.policies = p
	}
}

// WithLogger sets the logger used for load and resolve events
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// New loads the template at templatePath and prepares a generator.
// overrides must contain "basepath"; every other entry replaces the full
// default value of the matching template key.
func New(templatePath string, overrides map[string]string, opts ...Option) (*Generator, error) {
	if err := checkBasePath(overrides); err != nil {
		return nil, err
	}

	tmpl, err := LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	return FromTemplate(tmpl, overrides, opts...)
}

// FromTemplate prepares a generator for an already loaded template
func FromTemplate(tmpl *Template, overrides map[string]string, opts ...Option) (*Generator, error) {
	if err := checkBasePath(overrides); err != nil {
		return nil, err
	}

	o := options{
		policies: DefaultPolicies(),
		log:      logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log.WithFields(logger.F("template", tmpl.Path))
	g := &Generator{
		tmpl:     tmpl,
		basePath: overrides[BasePathKey],
		class:    ClassifyKeys(tmpl.Defaults),
		policies: make(map[string]Policy),
		log:      log,
	}

	g.overrides = matchOverrides(tmpl.Defaults, overrides, log)

	for _, key := range tmpl.Defaults.Keys() {
		if pol := o.policies.For(key); !pol.IsZero() {
			g.policies[key] = pol
		}
	}

	log.Debug("template classified",
		logger.F("keys", tmpl.Defaults.Len()),
		logger.F("root_path_keys", len(g.class.RootPathKeys)),
		logger.F("loop_path_keys", len(g.class.LoopPathKeys)),
		logger.F("overrides", len(g.overrides)),
	)

	return g, nil
}

func checkBasePath(overrides map[string]string) error {
	if _, ok := overrides[BasePathKey]; !ok {
		return &ConfigurationError{Field: BasePathKey, Message: "overrides must contain a basepath entry"}
	}
	return nil
}

// matchOverrides resolves override names to template keys. A name matches a
// key exactly or after trimming, and an exact match beats a trimmed one.
// Names without a template key are dropped with a warning.
func matchOverrides(defaults *ParameterSet, overrides map[string]string, log logger.Logger) []Entry {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		if name != BasePathKey {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	byKey := make(map[string]Entry)
	for _, name := range names {
		key, ok := defaults.Lookup(name)
		if !ok {
			log.Warn("override does not match any template key", logger.F("key", strings.TrimSpace(name)))
			continue
		}
		if prev, seen := byKey[key]; seen && prev.Key == key {
			continue
		}
		byKey[key] = Entry{Key: name, Value: overrides[name]}
	}

	matched := make([]Entry, 0, len(byKey))
	for _, key := range defaults.Keys() {
		if e, ok := byKey[key]; ok {
			matched = append(matched, Entry{Key: key, Value: e.Value})
		}
	}
	return matched
}

// Template returns the loaded template
func (g *Generator) Template() *Template {
	return g.tmpl
}

// BasePath returns the base path substituted for BASEPATH
func (g *Generator) BasePath() string {
	return g.basePath
}

// RootPathKeys returns the keys needing only base path substitution
func (g *Generator) RootPathKeys() []string {
	return append([]string(nil), g.class.RootPathKeys...)
}

// LoopPathKeys returns the keys needing loop substitution
func (g *Generator) LoopPathKeys() []string {
	return append([]string(nil), g.class.LoopPathKeys...)
}

// Policy returns the policy attached to a template key
func (g *Generator) Policy(key string) Policy {
	return g.policies[key]
}

// Params returns the template defaults with overrides applied, before any
// token substitution.
func (g *Generator) Params() *ParameterSet {
	params := g.tmpl.Defaults.Clone()
	for _, o := range g.overrides {
		params.Set(o.Key, o.Value)
	}
	return params
}
