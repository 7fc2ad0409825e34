package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ProjectEnvFile is the per-directory env file, read after the global one.
const ProjectEnvFile = ".glutenguard.env"

// EnvFiles returns the env files LoadEnvFiles reads by default, lowest
// precedence first.
func EnvFiles() []string {
	return []string{GlobalEnvPath(), ProjectEnvFile}
}

// LoadEnvFiles loads KEY=VALUE files into the process environment and returns
// the files that were read. Later files override earlier ones, but variables
// already present in the real environment are never overwritten.
func LoadEnvFiles(paths ...string) []string {
	origKeys := make(map[string]bool)
	for _, entry := range os.Environ() {
		if k, _, ok := strings.Cut(entry, "="); ok {
			origKeys[k] = true
		}
	}

	merged := make(map[string]string)
	var loaded []string
	for _, p := range paths {
		if mergeEnvFile(merged, p) {
			loaded = append(loaded, p)
		}
	}

	for k, v := range merged {
		if !origKeys[k] {
			_ = os.Setenv(k, v)
		}
	}
	return loaded
}

// mergeEnvFile merges path into dst and reports whether it was read.
// Missing or malformed files are skipped.
func mergeEnvFile(dst map[string]string, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	envs, err := ParseEnvFile(data)
	if err != nil {
		return false
	}
	for k, v := range envs {
		dst[k] = v
	}
	return true
}

// ParseEnvFile parses KEY=VALUE lines from data. Blank lines and # comments
// are skipped, a leading "export " is ignored and double-quoted values are
// unquoted.
func ParseEnvFile(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineNum, line)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNum)
		}
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			uq, err := strconv.Unquote(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", lineNum, k, err)
			}
			v = uq
		} else if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
			v = v[1 : len(v)-1]
		}
		result[k] = v
	}
	return result, scanner.Err()
}

// GlobalEnvPath returns the path to the global glutenguard env file.
func GlobalEnvPath() string {
	return filepath.Join(DataDir(), "env")
}
