package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shahar-caura/glutenguard/internal/provider"
)

// DefaultBaseURL is the public Open Food Facts instance.
const DefaultBaseURL = "https://world.openfoodfacts.org"

const productFields = "code,product_name,product_name_en,brands,ingredients_text,ingredients_text_en,image_front_url,allergens_tags,traces_tags,labels_tags"

// Client looks up products via the Open Food Facts REST API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// New returns a client for baseURL. Open Food Facts asks every integration to
// identify itself with userAgent.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

type productResponse struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Product *offProduct `json:"product"`
}

type searchResponse struct {
	Count    int          `json:"count"`
	Products []offProduct `json:"products"`
}

type offProduct struct {
	Code              string   `json:"code"`
	ProductName       string   `json:"product_name"`
	ProductNameEN     string   `json:"product_name_en"`
	Brands            string   `json:"brands"`
	IngredientsText   string   `json:"ingredients_text"`
	IngredientsTextEN string   `json:"ingredients_text_en"`
	ImageFrontURL     string   `json:"image_front_url"`
	AllergensTags     []string `json:"allergens_tags"`
	TracesTags        []string `json:"traces_tags"`
	LabelsTags        []string `json:"labels_tags"`
}

func (p offProduct) toProduct(fallbackCode string) provider.Product {
	out := provider.Product{
		Barcode:         p.Code,
		Name:            p.ProductName,
		Brand:           firstBrand(p.Brands),
		IngredientsText: p.IngredientsText,
		ImageURL:        p.ImageFrontURL,
		Allergens:       p.AllergensTags,
		Traces:          p.TracesTags,
		Labels:          p.LabelsTags,
	}
	if out.Barcode == "" {
		out.Barcode = fallbackCode
	}
	if out.Name == "" {
		out.Name = p.ProductNameEN
	}
	if out.IngredientsText == "" {
		out.IngredientsText = p.IngredientsTextEN
	}
	return out
}

// ProductByBarcode fetches one product. Returns provider.ErrNotFound when the
// database has no entry for barcode.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) (*provider.Product, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s", c.baseURL, url.PathEscape(barcode), productFields)

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("openfoodfacts: product %s: %w", barcode, provider.ErrNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d: %s", status, body)
	}

	var result productResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("openfoodfacts: parsing response: %w", err)
	}
	if result.Status == 0 || result.Product == nil {
		return nil, fmt.Errorf("openfoodfacts: product %s: %w", barcode, provider.ErrNotFound)
	}

	code := result.Code
	if code == "" {
		code = barcode
	}
	p := result.Product.toProduct(code)
	return &p, nil
}

// SearchProducts returns up to limit products matching query by name.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]provider.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("search_terms", query)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", strconv.Itoa(limit))
	q.Set("fields", productFields)

	body, status, err := c.get(ctx, c.baseURL+"/cgi/search.pl?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d: %s", status, body)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("openfoodfacts: parsing response: %w", err)
	}

	products := make([]provider.Product, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, p.toProduct(""))
		if len(products) == limit {
			break
		}
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("openfoodfacts: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("openfoodfacts: sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("openfoodfacts: reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}
