// Package i18n resolves dotted translation keys against nested per-language
// tables with a fallback chain that ends at the literal key.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed locales/*.toml
var locales embed.FS

// Lang is a language code such as "en" or "zh".
type Lang string

const (
	English Lang = "en"
	Chinese Lang = "zh"
)

// Supported lists the languages shipped with the binary, in toggle order.
var Supported = []Lang{English, Chinese}

// ParseLang maps a user supplied code to a supported language.
func ParseLang(s string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return English, true
	case "zh", "zh-tw", "zh-hant", "chinese":
		return Chinese, true
	}
	return "", false
}

// Next returns the language after l in Supported, wrapping around.
func (l Lang) Next() Lang {
	for i, s := range Supported {
		if s == l {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

// Replacements maps placeholder names to their substitution values.
type Replacements map[string]string

type node struct {
	text     string
	leaf     bool
	children map[string]*node
	order    []string
}

func newBranch() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(name string) *node {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := newBranch()
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// Resolver holds the loaded tables and the fallback chain.
type Resolver struct {
	tables   map[Lang]*node
	fallback []Lang
}

// New returns a resolver loaded with the embedded tables, falling back to
// the given languages in order.
func New(fallback ...Lang) (*Resolver, error) {
	if len(fallback) == 0 {
		fallback = []Lang{English}
	}
	r := &Resolver{tables: make(map[Lang]*node), fallback: fallback}
	for _, lang := range Supported {
		data, err := locales.ReadFile("locales/" + string(lang) + ".toml")
		if err != nil {
			return nil, fmt.Errorf("read %s table: %w", lang, err)
		}
		if err := r.Load(lang, data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is New for package-level wiring where the embedded tables are
// known to be valid.
func MustNew(fallback ...Lang) *Resolver {
	r, err := New(fallback...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewEmpty returns a resolver without tables. Tables are added with Load.
func NewEmpty(fallback ...Lang) *Resolver {
	return &Resolver{tables: make(map[Lang]*node), fallback: fallback}
}

// Load parses a TOML table for lang, replacing any table already loaded.
// Key order follows the document so option lists keep their order.
func (r *Resolver) Load(lang Lang, data []byte) error {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return fmt.Errorf("parse %s table: %w", lang, err)
	}

	root := newBranch()
	for _, key := range md.Keys() {
		v, ok := lookupRaw(raw, key)
		if !ok {
			continue
		}
		n := root
		for _, part := range key {
			n = n.child(part)
		}
		if s, ok := v.(string); ok {
			n.text = s
			n.leaf = true
		}
	}
	r.tables[lang] = root
	return nil
}

func lookupRaw(raw map[string]interface{}, key toml.Key) (interface{}, bool) {
	var cur interface{} = raw
	for _, part := range key {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Resolve looks key up in lang, then in each fallback language. A key that
// is found nowhere resolves to itself.
func (r *Resolver) Resolve(lang Lang, key Key, repl Replacements) Value {
	path := key.Path()
	chain := append([]Lang{lang}, r.fallback...)
	for _, l := range chain {
		root, ok := r.tables[l]
		if !ok {
			continue
		}
		if n := walk(root, path); n != nil {
			if n.leaf {
				return Value{key: key, text: substitute(n.text, repl), leaf: true}
			}
			return Value{key: key, node: n}
		}
	}
	return Value{key: key, text: string(key), leaf: true, missing: true}
}

func walk(root *node, path []string) *node {
	n := root
	for _, part := range path {
		if n.leaf {
			return nil
		}
		next, ok := n.children[part]
		if !ok {
			return nil
		}
		n = next
	}
	if n.leaf && n.text == "" {
		return nil
	}
	return n
}

// substitute replaces {name} tokens in one left-to-right pass. Inserted
// values are never expanded again and unknown tokens stay verbatim.
func substitute(s string, repl Replacements) string {
	if len(repl) == 0 || !strings.Contains(s, "{") {
		return s
	}
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open+1:], '}')
		if end < 0 {
			break
		}
		end += open + 1
		b.WriteString(s[:open])
		if value, ok := repl[s[open+1:end]]; ok {
			b.WriteString(value)
			s = s[end+1:]
			continue
		}
		// Unknown token: keep the brace and rescan after it, so "{{x}" still
		// finds {x}.
		b.WriteByte('{')
		s = s[open+1:]
	}
	b.WriteString(s)
	return b.String()
}

// Value is the result of a lookup: either display text or a mapping of
// option values to labels.
type Value struct {
	key     Key
	text    string
	leaf    bool
	missing bool
	node    *node
}

// IsText reports whether the value is a display string.
func (v Value) IsText() bool { return v.leaf }

// Missing reports whether the lookup fell through to the literal key.
func (v Value) Missing() bool { return v.missing }

// String returns the display text. Mappings render as their key.
func (v Value) String() string {
	if v.leaf {
		return v.text
	}
	return string(v.key)
}

// Entry is one option of a mapping value.
type Entry struct {
	Value string
	Label string
}

// Entries lists the leaf children of a mapping in table order.
func (v Value) Entries() []Entry {
	if v.node == nil {
		return nil
	}
	entries := make([]Entry, 0, len(v.node.order))
	for _, name := range v.node.order {
		c := v.node.children[name]
		if c.leaf {
			entries = append(entries, Entry{Value: name, Label: c.text})
		}
	}
	return entries
}

// Localizer is a resolver bound to one display language.
type Localizer struct {
	r    *Resolver
	lang Lang
}

// For binds the resolver to lang.
func (r *Resolver) For(lang Lang) Localizer {
	return Localizer{r: r, lang: lang}
}

// Lang returns the bound language.
func (l Localizer) Lang() Lang { return l.lang }

// T returns the display string for key.
func (l Localizer) T(key Key) string {
	return l.r.Resolve(l.lang, key, nil).String()
}

// Format returns the display string for key with placeholders substituted.
func (l Localizer) Format(key Key, repl Replacements) string {
	return l.r.Resolve(l.lang, key, repl).String()
}

// Option returns the label of one option value in group.
func (l Localizer) Option(group, value string) string {
	return l.T(OptionKey(group, value))
}

// Options returns the labels of an option group in table order.
func (l Localizer) Options(group string) []Entry {
	return l.r.Resolve(l.lang, Key("options."+group), nil).Entries()
}

// Lookup returns the display string for key and whether any table in the
// chain had it.
func (l Localizer) Lookup(key Key) (string, bool) {
	v := l.r.Resolve(l.lang, key, nil)
	return v.String(), !v.Missing() && v.IsText()
}
