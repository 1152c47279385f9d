package configuration

import (
	"os"
	"strings"

	"social-dashboard/infrastructure/logger"
)

// LoadEnvFromFile reads KEY=VALUE pairs from the given files into the
// process environment. Missing files are skipped, comments and blank lines
// ignored, and variables already present in the environment win over file
// values. An optional "export " prefix and single or double quotes around
// the value are accepted.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		loaded := 0
		for _, raw := range strings.Split(string(data), "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			line = strings.TrimPrefix(line, "export ")
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			val = strings.Trim(strings.TrimSpace(val), `"'`)
			if _, exists := os.LookupEnv(key); exists {
				continue
			}
			if err := os.Setenv(key, val); err == nil {
				loaded++
			}
		}
		logger.GetLogger().WithField("file", p).WithField("vars", loaded).Debug("env file loaded")
	}
}
