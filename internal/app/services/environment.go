package services

import (
	"fmt"
	"os"
	"sort"
)

// BuildCommandEnv builds the environment passed to the editor and other
// external commands.
func BuildCommandEnv(workspaceDir, project, file string) map[string]string {
	env := map[string]string{
		"FUEL_WORKSPACE": workspaceDir,
		"FUEL_PROJECT":   project,
	}
	if file != "" {
		env["FUEL_FILE"] = file
	}
	return env
}

// ExpandWithEnv expands environment variables using the provided map first.
func ExpandWithEnv(input string, env map[string]string) string {
	if input == "" {
		return ""
	}
	return os.Expand(input, func(key string) string {
		if val, ok := env[key]; ok {
			return val
		}
		return os.Getenv(key)
	})
}

// EnvMapToList converts environment variables to sorted KEY=VALUE pairs.
func EnvMapToList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for key, val := range env {
		out = append(out, fmt.Sprintf("%s=%s", key, val))
	}
	sort.Strings(out)
	return out
}
