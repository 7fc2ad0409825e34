package provider

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when the remote source has no record.
var ErrNotFound = errors.New("not found")

// Product is a packaged product as reported by a product database.
type Product struct {
	Barcode         string   `json:"barcode" yaml:"barcode"`
	Name            string   `json:"name" yaml:"name"`
	Brand           string   `json:"brand,omitempty" yaml:"brand,omitempty"`
	IngredientsText string   `json:"ingredients_text" yaml:"ingredients_text"`
	ImageURL        string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Allergens       []string `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	Traces          []string `json:"traces,omitempty" yaml:"traces,omitempty"`
	Labels          []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Recipe is a dish with its ingredient lines joined into one string.
type Recipe struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Source          string `json:"source,omitempty"`
	IngredientsText string `json:"ingredients_text"`
}

// ProductLookup resolves barcodes and product names to ingredient lists.
type ProductLookup interface {
	ProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}

// RecipeSource finds recipes by dish name.
type RecipeSource interface {
	SearchRecipes(ctx context.Context, name string) ([]Recipe, error)
}
