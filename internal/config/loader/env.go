package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of environment variables read by
// NewEnvLoader callers that do not pick their own.
const DefaultEnvPrefix = "INKWELL_"

// EnvLoader loads configuration from environment variables.
//
// A variable maps to a setting by its name: INKWELL_EDITOR_TAB_WIDTH sets
// editor.tabWidth. Variables listed in the mapping use their mapped path
// instead.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "INKWELL_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "INKWELL_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "TAB_WIDTH": "editor.tabWidth",
		prefix + "READ_ONLY": "editor.readOnly",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are valid values, not unset ones.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts INKWELL_EDITOR_TAB_WIDTH to editor.tabWidth. A name
// with no setting part maps to the empty path.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}

	parts := strings.Split(setting, "_")
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return strings.ToLower(section) + "." + b.String()
}

// parseValue converts a variable's text into a bool, an integer, a float or
// leaves it a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only parse floats with a decimal point so integers stay integers.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
