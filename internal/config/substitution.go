package config

import (
	"fmt"
	"regexp"
	"strings"
)

// envRefPattern matches ${env://NAME} and ${env://NAME:-fallback}.
var envRefPattern = regexp.MustCompile(`\$\{env://([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnv replaces ${env://NAME} references in content with values from
// lookup. A reference with a ":-fallback" part uses the fallback when the
// variable is unset or empty; a reference without one is an error.
// All unresolved names are reported together.
func ExpandEnv(content string, lookup func(string) string) (string, error) {
	var missing []string

	out := envRefPattern.ReplaceAllStringFunc(content, func(ref string) string {
		m := envRefPattern.FindStringSubmatch(ref)
		name := m[1]
		if v := lookup(name); v != "" {
			return v
		}
		if strings.Contains(ref, ":-") {
			return m[2]
		}
		missing = append(missing, name)
		return ref
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable substitution failed: %s not set", strings.Join(missing, ", "))
	}
	return out, nil
}

// HasEnvRefs reports whether content contains any ${env://...} reference.
func HasEnvRefs(content string) bool {
	return envRefPattern.MatchString(content)
}
