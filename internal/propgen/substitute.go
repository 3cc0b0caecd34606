package propgen

import (
	"strconv"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

// Resolve computes the fully substituted parameters for one (outer, inner)
// iteration. The generator is not modified.
//
// Order of work:
//  1. overrides replace whole template values
//  2. root-path keys get BASEPATH replaced
//  3. loop-path keys are cleared (clear-on-zero at inner 0) or get LOOP_PAIR,
//     OUTER, # and BASEPATH replaced in a single pass
//  4. first-inner-only keys are cleared on every inner iteration but 0
func (g *Generator) Resolve(outer, inner string) (*ParameterSet, error) {
	if outer == "" {
		return nil, &ConfigurationError{Field: "outer index", Message: "must not be empty"}
	}
	if inner == "" {
		return nil, &ConfigurationError{Field: "inner index", Message: "must not be empty"}
	}

	params := g.Params()
	firstInner := inner == "0"

	for _, key := range g.class.RootPathKeys {
		value, _ := params.Get(key)
		params.Set(key, strings.ReplaceAll(value, TokenBasePath, g.basePath))
	}

	current := g.loopReplacer(outer, inner)
	for _, key := range g.class.LoopPathKeys {
		pol := g.policies[key]
		if pol.ClearOnZero && firstInner {
			params.Set(key, "")
			continue
		}

		r := current
		if pol.PreviousInner {
			prev, err := previousInner(key, inner)
			if err != nil {
				return nil, err
			}
			r = g.loopReplacer(outer, prev)
		}

		value, _ := params.Get(key)
		params.Set(key, r.Replace(value))
	}

	if !firstInner {
		for _, key := range params.Keys() {
			if g.policies[key].FirstInnerOnly {
				params.Set(key, "")
			}
		}
	}

	g.log.Debug("parameters resolved", logger.F("outer", outer), logger.F("inner", inner))
	return params, nil
}

// loopReplacer substitutes every token in one pass, so text produced by one
// substitution is never matched by another.
func (g *Generator) loopReplacer(outer, inner string) *strings.Replacer {
	return strings.NewReplacer(
		TokenLoopPair, "outer"+outer+"/inner"+inner,
		TokenOuter, "outer"+outer,
		TokenInner, inner,
		TokenBasePath, g.basePath,
	)
}

func previousInner(key, inner string) (string, error) {
	n, err := strconv.Atoi(inner)
	if err != nil {
		return "", &ConfigurationError{
			Field:   "inner index",
			Message: "key " + strings.TrimSpace(key) + " reads the previous inner iteration, so the index must be numeric, got " + strconv.Quote(inner),
		}
	}
	if n < 1 {
		return "", &ConfigurationError{
			Field:   "inner index",
			Message: "key " + strings.TrimSpace(key) + " reads the previous inner iteration, which does not exist at inner " + inner,
		}
	}
	return strconv.Itoa(n - 1), nil
}
