package propgen

import "strings"

// Placeholder tokens recognised in template values
const (
	TokenBasePath = "BASEPATH"
	TokenLoopPair = "LOOP_PAIR"
	TokenOuter    = "OUTER"
	TokenInner    = "#"
)

// BasePathKey is the override entry holding the base path. It is a
// substitution input and never a template key.
const BasePathKey = "basepath"

var loopTokens = []string{TokenLoopPair, TokenOuter, TokenInner}

// Classification partitions template keys by the placeholder family their
// default value carries. Both lists follow template order and are disjoint.
type Classification struct {
	RootPathKeys []string
	LoopPathKeys []string
}

// ClassifyKeys sorts keys into root-path keys (BASEPATH only) and loop-path
// keys (any loop token, with or without BASEPATH). Keys without tokens are in
// neither list.
func ClassifyKeys(params *ParameterSet) Classification {
	c := Classification{
		RootPathKeys: make([]string, 0),
		LoopPathKeys: make([]string, 0),
	}
	for _, e := range params.entries {
		switch {
		case hasLoopToken(e.Value):
			c.LoopPathKeys = append(c.LoopPathKeys, e.Key)
		case strings.Contains(e.Value, TokenBasePath):
			c.RootPathKeys = append(c.RootPathKeys, e.Key)
		}
	}
	return c
}

func hasLoopToken(value string) bool {
	for _, tok := range loopTokens {
		if strings.Contains(value, tok) {
			return true
		}
	}
	return false
}
