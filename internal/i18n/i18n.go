// Package i18n resolves user-facing text for the supported locales.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Locale is a supported UI/prompt language.
type Locale int

const (
	Indonesian Locale = iota
	English
)

// Default is used whenever a locale tag is missing or unsupported.
const Default = Indonesian

var tags = [...]string{
	Indonesian: "id",
	English:    "en",
}

//go:embed messages/*.json
var messageFS embed.FS

var catalogs [len(tags)]map[string]any

func init() {
	for i, tag := range tags {
		data, err := messageFS.ReadFile("messages/" + tag + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing catalog %s: %v", tag, err))
		}
		var c map[string]any
		if err := json.Unmarshal(data, &c); err != nil {
			panic(fmt.Sprintf("i18n: invalid catalog %s: %v", tag, err))
		}
		catalogs[i] = c
	}
}

// Locales lists the supported locales, default first.
func Locales() []Locale {
	out := make([]Locale, len(tags))
	for i := range tags {
		out[i] = Locale(i)
	}
	return out
}

func (l Locale) valid() bool {
	return l >= 0 && int(l) < len(tags)
}

// String returns the locale tag ("id", "en").
func (l Locale) String() string {
	if !l.valid() {
		return tags[Default]
	}
	return tags[l]
}

// Parse maps a tag such as "en" or "en-US" to a Locale, falling back to Default.
func Parse(tag string) Locale {
	l, _ := lookup(tag)
	return l
}

func lookup(tag string) (Locale, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	for i, t := range tags {
		if t == tag {
			return Locale(i), true
		}
	}
	return Default, false
}

// FromAcceptLanguage returns the first supported language in an Accept-Language header.
// Quality values are ignored; order is taken as preference.
func FromAcceptLanguage(header string) (Locale, bool) {
	for _, part := range strings.Split(header, ",") {
		if i := strings.Index(part, ";"); i >= 0 {
			part = part[:i]
		}
		if l, ok := lookup(part); ok {
			return l, true
		}
	}
	return Default, false
}

type ctxKey struct{}

// WithLocale stores the request locale in ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request locale, or Default when none was set.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok && l.valid() {
		return l
	}
	return Default
}

// Translator resolves dotted keys against one locale's catalog.
type Translator struct {
	locale    Locale
	namespace string
}

// For returns a translator for l. An optional namespace is prefixed to every key.
func For(l Locale, namespace ...string) Translator {
	if !l.valid() {
		l = Default
	}
	return Translator{locale: l, namespace: strings.Join(namespace, ".")}
}

func (t Translator) Locale() Locale { return t.locale }

// T resolves key and interpolates {name} placeholders from vars.
// A key that does not resolve to a string is returned unchanged (with namespace).
func (t Translator) T(key string, vars ...map[string]any) string {
	full := key
	if t.namespace != "" {
		full = t.namespace + "." + key
	}
	s, ok := resolve(catalogs[t.locale], full).(string)
	if !ok {
		return full
	}
	if len(vars) == 0 {
		return s
	}
	return Format(s, vars[0])
}

// Has reports whether key resolves to a string.
func (t Translator) Has(key string) bool {
	full := key
	if t.namespace != "" {
		full = t.namespace + "." + key
	}
	_, ok := resolve(catalogs[t.locale], full).(string)
	return ok
}

func resolve(node any, key string) any {
	for _, segment := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		if node, ok = m[segment]; !ok {
			return nil
		}
	}
	return node
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Format replaces {name} with vars[name]. Unknown names are left as-is.
func Format(s string, vars map[string]any) string {
	if len(vars) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := vars[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}
