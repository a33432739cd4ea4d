package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ExpandEnvStrict replaces ${NAME} and ${NAME:-fallback} references. A
// reference without a fallback to an unset variable is an error.
func ExpandEnvStrict(s string) (string, error) {
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(s, func(ref string) string {
		expr := envVarPattern.FindStringSubmatch(ref)[1]
		name, fallback, hasFallback := strings.Cut(expr, ":-")

		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if hasFallback {
			return fallback
		}
		missing = append(missing, name)
		return ref
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable %s is not set", strings.Join(missing, ", "))
	}
	return out, nil
}
