package main

import (
	"fmt"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/config"
	"github.com/shahar-caura/glutenguard/internal/dishes"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/provider/mealdb"
	"github.com/shahar-caura/glutenguard/internal/provider/openfoodfacts"
	"github.com/shahar-caura/glutenguard/internal/store"
)

// services are the collaborators a command works with. Close releases the store.
type services struct {
	Phrases *phrases.Provider
	Store   *store.Store
	Checker *checker.Checker
}

func (s *services) Close() error {
	return s.Store.Close()
}

// loadPhrases returns the configured phrase file, or the built-in lists.
func loadPhrases(cfg *config.Config) (*phrases.Set, error) {
	if cfg.Phrases.File == "" {
		return phrases.Default(), nil
	}
	return phrases.LoadFile(cfg.Phrases.File)
}

func openStore(cfg *config.Config) (*store.Store, error) {
	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	return store.New(kv, store.Options{
		CacheTTL:     cfg.Store.CacheTTL.Duration,
		HistoryLimit: cfg.Store.HistoryLimit,
	}), nil
}

// wire builds the checker and its collaborators from config.
func (a *app) wire() (*services, error) {
	set, err := loadPhrases(a.cfg)
	if err != nil {
		return nil, err
	}
	st, err := openStore(a.cfg)
	if err != nil {
		return nil, err
	}

	p := phrases.NewProvider(set, a.logger)
	deps := checker.Deps{
		Phrases: p,
		Products: openfoodfacts.New(
			a.cfg.OpenFoodFacts.BaseURL,
			a.cfg.OpenFoodFacts.UserAgent,
			a.cfg.OpenFoodFacts.Timeout.Duration,
		),
		Dishes: dishes.Default(),
		Store:  st,
		Logger: a.logger,
	}
	if a.cfg.Recipes.Provider == config.RecipesMealDB {
		deps.Recipes = mealdb.New(a.cfg.Recipes.BaseURL, a.cfg.Recipes.Timeout.Duration)
	}

	a.logger.Debug("wired services",
		"phrases_version", set.Version,
		"store", a.cfg.Store.Backend,
		"recipes", a.cfg.Recipes.Provider)

	return &services{Phrases: p, Store: st, Checker: checker.New(deps)}, nil
}
