// Package checker turns user input (free text, a barcode, a dish name) into
// classified checks, consulting the local dish table, remote product and recipe
// sources, and the favorites/cache store.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shahar-caura/glutenguard/internal/classify"
	"github.com/shahar-caura/glutenguard/internal/dishes"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/provider"
	"github.com/shahar-caura/glutenguard/internal/scanner"
	"github.com/shahar-caura/glutenguard/internal/store"
)

var (
	ErrEmptyQuery         = errors.New("empty query")
	ErrProductNotFound    = errors.New("product not found")
	ErrLookupFailed       = errors.New("lookup failed")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	errNoProductsProvider = errors.New("no product database configured")
)

// DefaultLimit caps name searches when the caller passes no limit.
const DefaultLimit = 10

// Source says where a check's ingredients came from.
type Source string

const (
	SourceText    Source = "text"
	SourceBarcode Source = "barcode"
	SourceDish    Source = "dish"
	SourceRecipe  Source = "recipe"
	SourceProduct Source = "product"
)

// Check is one classification of one input, with its provenance.
type Check struct {
	ID             uuid.UUID         `json:"id"`
	Source         Source            `json:"source"`
	Query          string            `json:"query"`
	Product        *provider.Product `json:"product,omitempty"`
	Dish           *dishes.Dish      `json:"dish,omitempty"`
	Recipe         *provider.Recipe  `json:"recipe,omitempty"`
	Result         classify.Result   `json:"result"`
	PhrasesVersion string            `json:"phrases_version"`
	Cached         bool              `json:"cached"`
	CheckedAt      time.Time         `json:"checked_at"`
}

// Title is a short human label for the checked item.
func (c Check) Title() string {
	switch {
	case c.Product != nil && c.Product.Name != "":
		return c.Product.Name
	case c.Dish != nil:
		return c.Dish.Name
	case c.Recipe != nil:
		return c.Recipe.Name
	case c.Product != nil:
		return c.Product.Barcode
	}
	return c.Query
}

// Ingredients returns the ingredient text that was classified.
func (c Check) Ingredients() string {
	switch {
	case c.Product != nil:
		return c.Product.IngredientsText
	case c.Dish != nil:
		return c.Dish.Ingredients
	case c.Recipe != nil:
		return c.Recipe.IngredientsText
	}
	return c.Query
}

// Store is the persistence the checker needs; *store.Store satisfies it.
type Store interface {
	GetCached(ctx context.Context, key string) (*store.Record, error)
	SetCached(ctx context.Context, key string, rec store.Record) error
	GetFavorite(ctx context.Context, key string) (*store.Record, error)
	SetFavorite(ctx context.Context, key string, rec store.Record) error
	RemoveFavorite(ctx context.Context, key string) error
	ListFavorites(ctx context.Context) ([]store.Record, error)
	AppendHistory(ctx context.Context, e store.HistoryEntry) error
	History(ctx context.Context) ([]store.HistoryEntry, error)
}

// Deps are the collaborators chosen at composition time. Recipes and Products
// may be nil; Phrases, Dishes and Store are required.
type Deps struct {
	Phrases  *phrases.Provider
	Products provider.ProductLookup
	Recipes  provider.RecipeSource
	Dishes   *dishes.Table
	Store    Store
	Logger   *slog.Logger
}

// Checker runs checks. It is safe for concurrent use.
type Checker struct {
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// New returns a Checker over deps.
func New(deps Deps) *Checker {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{deps: deps, logger: logger, now: time.Now}
}

// PhrasesVersion reports the version of the lists currently in use.
func (c *Checker) PhrasesVersion() string {
	return c.deps.Phrases.Current().Version
}

func (c *Checker) newCheck(source Source, query, ingredients string) Check {
	set := c.deps.Phrases.Current()
	return Check{
		ID:             uuid.New(),
		Source:         source,
		Query:          query,
		Result:         set.Classify(ingredients),
		PhrasesVersion: set.Version,
		CheckedAt:      c.now().UTC(),
	}
}

// CheckText classifies free ingredient text. Empty text yields an error
// status, not a Go error.
func (c *Checker) CheckText(ctx context.Context, text string) Check {
	chk := c.newCheck(SourceText, text, text)
	c.record(ctx, chk)
	return chk
}

// CheckBarcode looks up code (cache first, then the product database) and
// classifies the product's ingredients.
func (c *Checker) CheckBarcode(ctx context.Context, code string) (*Check, error) {
	barcode, err := scanner.Normalize(code)
	if err != nil {
		return nil, err
	}

	key := scanner.GTIN14(barcode)

	if rec, err := c.deps.Store.GetCached(ctx, key); err == nil {
		p := productFor(rec)
		chk := c.newCheck(SourceBarcode, barcode, p.IngredientsText)
		chk.Product = p
		chk.Cached = true
		c.record(ctx, chk)
		return &chk, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		c.logger.Warn("checker: cache read failed", "barcode", barcode, "error", err)
	}

	if c.deps.Products == nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, errNoProductsProvider)
	}
	p, err := c.deps.Products.ProductByBarcode(ctx, barcode)
	if errors.Is(err, provider.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, barcode)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if p.Barcode == "" {
		p.Barcode = barcode
	}

	chk := c.newCheck(SourceBarcode, barcode, p.IngredientsText)
	chk.Product = p

	if err := c.deps.Store.SetCached(ctx, key, recordFor(chk)); err != nil {
		c.logger.Warn("checker: cache write failed", "barcode", barcode, "error", err)
	}
	c.record(ctx, chk)
	return &chk, nil
}

// CheckName searches for name: an exact local dish, then fuzzy local dishes,
// then recipes, then products. Remote sources are only asked while results
// are short of limit. A failing source is logged and skipped; ErrLookupFailed
// is returned only when nothing was found and every remote source asked failed.
func (c *Checker) CheckName(ctx context.Context, name string, limit int) ([]Check, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		out       []Check
		seen      = make(map[string]bool)
		errs      []error
		attempted int
	)
	add := func(key string, chk Check) {
		if seen[key] || len(out) >= limit {
			return
		}
		seen[key] = true
		out = append(out, chk)
	}
	addDish := func(d dishes.Dish) {
		chk := c.newCheck(SourceDish, name, d.Ingredients)
		chk.Dish = &d
		add("dish:"+d.Name, chk)
	}

	if c.deps.Dishes != nil {
		if d, ok := c.deps.Dishes.Lookup(name); ok {
			addDish(d)
		}
		for _, d := range c.deps.Dishes.Search(name) {
			addDish(d)
		}
	}

	if c.deps.Recipes != nil && len(out) < limit {
		attempted++
		recipes, err := c.deps.Recipes.SearchRecipes(ctx, name)
		if err != nil {
			c.logger.Warn("checker: recipe search failed", "query", name, "error", err)
			errs = append(errs, err)
		}
		for _, r := range recipes {
			chk := c.newCheck(SourceRecipe, name, r.IngredientsText)
			chk.Recipe = &r
			add("recipe:"+dishes.Normalize(r.Name), chk)
		}
	}

	if c.deps.Products != nil && len(out) < limit {
		attempted++
		products, err := c.deps.Products.SearchProducts(ctx, name, limit-len(out))
		if err != nil {
			c.logger.Warn("checker: product search failed", "query", name, "error", err)
			errs = append(errs, err)
		}
		for _, p := range products {
			chk := c.newCheck(SourceProduct, name, p.IngredientsText)
			chk.Product = &p
			key := "product:" + p.Barcode
			if p.Barcode == "" {
				key = "product:" + dishes.Normalize(p.Name)
			}
			add(key, chk)
		}
	}

	if len(out) == 0 && attempted > 0 && len(errs) == attempted {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, errors.Join(errs...))
	}

	if len(out) > 0 {
		c.record(ctx, out[0])
	}
	if out == nil {
		out = []Check{}
	}
	return out, nil
}

// AddFavorite checks code and saves the product as a favorite.
func (c *Checker) AddFavorite(ctx context.Context, code string) (*store.Record, error) {
	chk, err := c.CheckBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	return c.AddFavoriteFromCheck(ctx, *chk)
}

// AddFavoriteFromCheck saves the product of a barcode check without looking
// it up again. Favorites are keyed by GTIN-14, so any form of the same code
// finds them.
func (c *Checker) AddFavoriteFromCheck(ctx context.Context, chk Check) (*store.Record, error) {
	if chk.Source != SourceBarcode || chk.Product == nil {
		return nil, fmt.Errorf("checker: favorite needs a barcode check, got %s", chk.Source)
	}
	key := scanner.GTIN14(chk.Query)
	rec := recordFor(chk)
	rec.SavedAt = time.Time{}
	if err := c.deps.Store.SetFavorite(ctx, key, rec); err != nil {
		return nil, fmt.Errorf("checker: saving favorite: %w", err)
	}
	saved, err := c.deps.Store.GetFavorite(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("checker: reading favorite: %w", err)
	}
	return saved, nil
}

// RemoveFavorite deletes the favorite for code.
func (c *Checker) RemoveFavorite(ctx context.Context, code string) error {
	barcode, err := scanner.Normalize(code)
	if err != nil {
		return err
	}
	err = c.deps.Store.RemoveFavorite(ctx, scanner.GTIN14(barcode))
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrFavoriteNotFound, barcode)
	}
	if err != nil {
		return fmt.Errorf("checker: removing favorite: %w", err)
	}
	return nil
}

// Favorites lists saved favorites, reclassified with the current lists so a
// list update is reflected without re-saving.
func (c *Checker) Favorites(ctx context.Context) ([]store.Record, error) {
	recs, err := c.deps.Store.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("checker: listing favorites: %w", err)
	}
	set := c.deps.Phrases.Current()
	for i := range recs {
		recs[i].Result = set.Classify(recs[i].IngredientsText)
	}
	return recs, nil
}

// History returns past checks, newest first.
func (c *Checker) History(ctx context.Context) ([]store.HistoryEntry, error) {
	h, err := c.deps.Store.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("checker: reading history: %w", err)
	}
	return h, nil
}

func (c *Checker) record(ctx context.Context, chk Check) {
	e := store.HistoryEntry{
		ID:        chk.ID.String(),
		Source:    string(chk.Source),
		Query:     chk.Query,
		Status:    chk.Result.Status,
		CheckedAt: chk.CheckedAt,
	}
	if title := chk.Title(); title != chk.Query {
		e.Name = title
	}
	if err := c.deps.Store.AppendHistory(ctx, e); err != nil {
		c.logger.Warn("checker: history write failed", "id", e.ID, "error", err)
	}
}

func recordFor(chk Check) store.Record {
	rec := store.Record{Result: chk.Result, SavedAt: chk.CheckedAt}
	if p := chk.Product; p != nil {
		rec.Barcode = p.Barcode
		rec.Name = p.Name
		rec.Brand = p.Brand
		rec.IngredientsText = p.IngredientsText
		rec.ImageURL = p.ImageURL
		rec.Allergens = p.Allergens
		rec.Traces = p.Traces
		rec.Labels = p.Labels
	}
	return rec
}

func productFor(rec *store.Record) *provider.Product {
	return &provider.Product{
		Barcode:         rec.Barcode,
		Name:            rec.Name,
		Brand:           rec.Brand,
		IngredientsText: rec.IngredientsText,
		ImageURL:        rec.ImageURL,
		Allergens:       rec.Allergens,
		Traces:          rec.Traces,
		Labels:          rec.Labels,
	}
}
