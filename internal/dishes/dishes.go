// Package dishes is the local table of common dishes and their usual
// ingredients, used when a name search should not depend on the network.
package dishes

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed dishes.yaml
var builtin []byte

// Risk is the editorial label attached to a dish.
type Risk string

const (
	RiskSafe    Risk = "safe"
	RiskCaution Risk = "caution"
	RiskUnsafe  Risk = "unsafe"
)

// Dish is one table entry.
type Dish struct {
	Name        string   `yaml:"name" json:"name"`
	Aliases     []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Ingredients string   `yaml:"ingredients" json:"ingredients"`
	Risk        Risk     `yaml:"risk" json:"risk"`
	Notes       string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Table indexes dishes by normalised name and alias.
type Table struct {
	dishes []Dish
	byName map[string]int
}

type tableFile struct {
	Dishes []Dish `yaml:"dishes"`
}

// Default returns the table compiled into the binary.
func Default() *Table {
	t, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("dishes: embedded table is invalid: %v", err))
	}
	return t
}

// Parse decodes and validates a dish table document.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dishes: %w", err)
	}

	t := &Table{byName: make(map[string]int)}
	var errs []error
	for i, d := range f.Dishes {
		d.Name = Normalize(d.Name)
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("dishes[%d]: name is required", i))
			continue
		}
		if strings.TrimSpace(d.Ingredients) == "" {
			errs = append(errs, fmt.Errorf("dish %q: ingredients are required", d.Name))
		}
		switch d.Risk {
		case RiskSafe, RiskCaution, RiskUnsafe:
		default:
			errs = append(errs, fmt.Errorf("dish %q: risk must be safe, caution or unsafe, got %q", d.Name, d.Risk))
		}

		idx := len(t.dishes)
		for _, key := range append([]string{d.Name}, d.Aliases...) {
			key = Normalize(key)
			if key == "" {
				continue
			}
			if prev, ok := t.byName[key]; ok {
				errs = append(errs, fmt.Errorf("dish %q: name %q already used by %q", d.Name, key, t.dishes[prev].Name))
				continue
			}
			t.byName[key] = idx
		}
		t.dishes = append(t.dishes, d)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Normalize lowercases s and collapses runs of whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Len returns the number of dishes.
func (t *Table) Len() int { return len(t.dishes) }

// All returns every dish in table order.
func (t *Table) All() []Dish {
	out := make([]Dish, len(t.dishes))
	copy(out, t.dishes)
	return out
}

// Lookup returns the dish whose name or alias equals name after normalisation.
func (t *Table) Lookup(name string) (Dish, bool) {
	idx, ok := t.byName[Normalize(name)]
	if !ok {
		return Dish{}, false
	}
	return t.dishes[idx], true
}

// Search returns dishes whose name or an alias contains query, or is
// contained in it ("chicken pad thai" finds "pad thai"). Sorted by name.
func (t *Table) Search(query string) []Dish {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	seen := make(map[int]bool)
	var out []Dish
	for key, idx := range t.byName {
		if seen[idx] {
			continue
		}
		if strings.Contains(key, q) || strings.Contains(q, key) {
			seen[idx] = true
			out = append(out, t.dishes[idx])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
