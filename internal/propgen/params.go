package propgen

import "strings"

// Entry is a single key/value pair of a ParameterSet.
type Entry struct {
	Key   string
	Value string
}

// ParameterSet is an ordered key/value mapping. Iteration order is the order
// in which keys were first added.
type ParameterSet struct {
	entries []Entry
	index   map[string]int
}

// NewParameterSet creates an empty parameter set
func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		entries: make([]Entry, 0),
		index:   make(map[string]int),
	}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (p *ParameterSet) Set(key, value string) {
	if i, ok := p.index[key]; ok {
		p.entries[i].Value = value
		return
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key
func (p *ParameterSet) Get(key string) (string, bool) {
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.entries[i].Value, true
}

// Has reports whether key is present
func (p *ParameterSet) Has(key string) bool {
	_, ok := p.index[key]
	return ok
}

// Lookup finds a key by its trimmed name, so "max.hh.id" matches the
// template key "max.hh.id ". An exact match wins.
func (p *ParameterSet) Lookup(name string) (string, bool) {
	if p.Has(name) {
		return name, true
	}
	trimmed := strings.TrimSpace(name)
	for _, e := range p.entries {
		if strings.TrimSpace(e.Key) == trimmed {
			return e.Key, true
		}
	}
	return "", false
}

// Keys returns the keys in order
func (p *ParameterSet) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in order
func (p *ParameterSet) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of keys
func (p *ParameterSet) Len() int {
	return len(p.entries)
}

// Clone returns an independent copy
func (p *ParameterSet) Clone() *ParameterSet {
	c := &ParameterSet{
		entries: make([]Entry, len(p.entries)),
		index:   make(map[string]int, len(p.index)),
	}
	copy(c.entries, p.entries)
	for k, v := range p.index {
		c.index[k] = v
	}
	return c
}
