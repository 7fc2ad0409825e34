// Package phrases loads and serves the gluten reference lists used by the
// ingredient classifier.
package phrases

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shahar-caura/glutenguard/internal/classify"
	"gopkg.in/yaml.v3"
)

//go:embed phrases.yaml
var canonical []byte

// Set is one immutable, validated version of both reference lists.
type Set struct {
	Version   string   `yaml:"version" json:"version"`
	Gluten    []string `yaml:"gluten" json:"gluten"`
	Ambiguous []string `yaml:"ambiguous" json:"ambiguous"`
}

// Lists returns the set in the shape the classifier consumes.
func (s *Set) Lists() classify.Lists {
	return classify.Lists{Gluten: s.Gluten, Ambiguous: s.Ambiguous}
}

// Classify classifies input against this set.
func (s *Set) Classify(input string) classify.Result {
	return classify.Classify(input, s.Gluten, s.Ambiguous)
}

// Default returns the canonical lists compiled into the binary.
func Default() *Set {
	s, err := Parse(canonical)
	if err != nil {
		panic(fmt.Sprintf("phrases: embedded list is invalid: %v", err))
	}
	return s
}

// LoadFile reads and validates a phrase file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading phrase file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("phrase file %q: %w", path, err)
	}
	return s, nil
}

// Parse decodes a phrase document. Phrases are trimmed and lowercased;
// repeats within a list collapse to the first occurrence. Empty phrases and
// phrases listed as both gluten and ambiguous are rejected.
func Parse(data []byte) (*Set, error) {
	var raw Set
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing phrases: %w", err)
	}

	var errs []error
	if strings.TrimSpace(raw.Version) == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if len(raw.Gluten) == 0 {
		errs = append(errs, errors.New("gluten list is empty"))
	}

	gluten, err := normalize("gluten", raw.Gluten)
	if err != nil {
		errs = append(errs, err)
	}
	ambiguous, err := normalize("ambiguous", raw.Ambiguous)
	if err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]bool, len(gluten))
	for _, p := range gluten {
		seen[p] = true
	}
	for _, p := range ambiguous {
		if seen[p] {
			errs = append(errs, fmt.Errorf("phrase %q is in both gluten and ambiguous lists", p))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Set{
		Version:   strings.TrimSpace(raw.Version),
		Gluten:    gluten,
		Ambiguous: ambiguous,
	}, nil
}

func normalize(list string, in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return nil, fmt.Errorf("%s[%d]: empty phrase", list, i)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
