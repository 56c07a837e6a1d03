// Package i18n provides the message catalog behind annotation titles and
// messages.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"covannot/internal/annotate"
)

// ErrUnknownKey is returned for overrides that name no known message.
var ErrUnknownKey = errors.New("unknown message key")

// Catalog implements annotate.Catalog on top of x/text message catalogs.
type Catalog struct {
	tag       language.Tag
	printer   *message.Printer
	overrides map[annotate.MessageKey]string
}

var (
	builder   = catalog.NewBuilder(catalog.Fallback(translations[0].tag))
	supported []language.Tag
	matcher   language.Matcher
)

func init() {
	for _, tr := range translations {
		supported = append(supported, tr.tag)
		for key, text := range tr.messages {
			// Built-in strings must not contain format verbs.
			if err := builder.SetString(tr.tag, string(key), text); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tr.tag, key, err))
			}
		}
	}
	matcher = language.NewMatcher(supported)
}

// Supported returns the locales that ship with built-in strings.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// New builds a catalog for the best match of locale. An empty or unknown
// locale falls back to English. Overrides replace individual strings and
// are returned verbatim.
func New(locale string, overrides map[string]string) (*Catalog, error) {
	tag := Match(locale)

	c := &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
	if len(overrides) > 0 {
		known := make(map[annotate.MessageKey]bool)
		for _, k := range annotate.MessageKeys() {
			known[k] = true
		}
		c.overrides = make(map[annotate.MessageKey]string, len(overrides))
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !known[annotate.MessageKey(k)] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
			}
			c.overrides[annotate.MessageKey(k)] = overrides[k]
		}
	}
	return c, nil
}

// Match picks the supported locale closest to the given BCP 47 tag or POSIX
// locale name (e.g. "ru_RU.UTF-8").
func Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return supported[0]
	}
	want, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// LocaleFromEnv reads the POSIX locale variables in priority order.
func LocaleFromEnv(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Tag returns the locale the catalog resolved to.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Message returns the string for key in the catalog's locale.
func (c *Catalog) Message(key annotate.MessageKey) string {
	if s, ok := c.overrides[key]; ok {
		return s
	}
	return c.printer.Sprintf(string(key))
}
