package effects

import (
	"strings"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Key is a stat path an effect writes to, either fixed or a template with a
// `?` placeholder such as `resistances.?`.
type Key interface {
	Path() string
	isKey()
}

// FixedKey is a literal stat path
type FixedKey struct {
	path string
}

func (k FixedKey) Path() string { return k.path }
func (FixedKey) isKey()         {}

// WildcardKey substitutes every `?` in Template
type WildcardKey struct {
	Template     string
	Substitution string
}

func (k WildcardKey) Path() string {
	return strings.ReplaceAll(k.Template, "?", k.Substitution)
}
func (WildcardKey) isKey() {}

// ParseKey builds a key from raw definition data and validates the
// resulting path.
func ParseKey(template, substitution string) (Key, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		return nil, ovaerr.Validationf("effect key is empty")
	}

	var key Key = FixedKey{path: template}
	if strings.Contains(template, "?") {
		if substitution == "" {
			return nil, ovaerr.Validationf("effect key %q needs a substitution", template).
				WithMeta("key", template)
		}
		key = WildcardKey{Template: template, Substitution: substitution}
	}

	for _, part := range strings.Split(key.Path(), ".") {
		if part == "" {
			return nil, ovaerr.Validationf("effect key %q has an empty segment", key.Path()).
				WithMeta("key", template)
		}
	}
	return key, nil
}
