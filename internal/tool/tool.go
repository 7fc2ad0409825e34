// Package tool exposes gluten checks to assistants as MCP tools.
package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shahar-caura/glutenguard/internal/checker"
)

// MetadataClassifyIngredients describes the classify_ingredients tool.
var MetadataClassifyIngredients = &mcp.Tool{
	Name: "classify_ingredients",
	Description: "Classify a free-text ingredient list for gluten. " +
		"Returns status unsafe when a known gluten source is listed, caution when only " +
		"ingredients that may hide gluten (natural flavors, stock, malt vinegar and similar) are present, " +
		"safe otherwise, and error when the list is empty.",
	InputSchema: map[string]any{
		"type":     "object",
		"required": []string{"ingredients"},
		"properties": map[string]any{
			"ingredients": map[string]any{
				"type":        "string",
				"description": "Ingredient list as printed on the package, comma separated",
			},
		},
	},
}

// MetadataCheckBarcode describes the check_barcode tool.
var MetadataCheckBarcode = &mcp.Tool{
	Name: "check_barcode",
	Description: "Look up a packaged product by its EAN/UPC barcode in Open Food Facts and classify " +
		"its ingredients for gluten. Spaces and hyphens in the barcode are ignored.",
	InputSchema: map[string]any{
		"type":     "object",
		"required": []string{"barcode"},
		"properties": map[string]any{
			"barcode": map[string]any{
				"type":        "string",
				"description": "8, 12, 13 or 14 digit GTIN including the check digit",
			},
		},
	},
}

// MetadataSearchDish describes the search_dish tool.
var MetadataSearchDish = &mcp.Tool{
	Name: "search_dish",
	Description: "Search dishes, recipes and products by name and classify each match for gluten. " +
		"Local dishes come first and carry a typical risk label with notes.",
	InputSchema: map[string]any{
		"type":     "object",
		"required": []string{"name"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Dish or product name, e.g. pad thai",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum matches to return (default 10)",
				"minimum":     1,
				"maximum":     50,
			},
		},
	},
}

// InputClassifyIngredients is the input for the ClassifyIngredients tool.
type InputClassifyIngredients struct {
	Ingredients string `json:"ingredients"`
}

// InputCheckBarcode is the input for the CheckBarcode tool.
type InputCheckBarcode struct {
	Barcode string `json:"barcode"`
}

// InputSearchDish is the input for the SearchDish tool.
type InputSearchDish struct {
	Name  string `json:"name"`
	Limit int    `json:"limit,omitempty"`
}

// Verdict is one classified item.
type Verdict struct {
	Source           string   `json:"source"`
	Name             string   `json:"name,omitempty"`
	Barcode          string   `json:"barcode,omitempty"`
	Ingredients      string   `json:"ingredients,omitempty"`
	Status           string   `json:"status"`
	Message          string   `json:"message"`
	MatchedPhrases   []string `json:"matched_phrases"`
	AmbiguousPhrases []string `json:"ambiguous_phrases"`
	// TypicalRisk and Notes are set for local dishes.
	TypicalRisk string `json:"typical_risk,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Cached      bool   `json:"cached,omitempty"`
}

// OutputCheck is the output for the ClassifyIngredients and CheckBarcode tools.
type OutputCheck struct {
	Result         Verdict `json:"result"`
	PhrasesVersion string  `json:"phrases_version"`
}

// OutputSearchDish is the output for the SearchDish tool.
type OutputSearchDish struct {
	Matches        []Verdict `json:"matches"`
	PhrasesVersion string    `json:"phrases_version"`
}

// Tools binds the MCP tool handlers to a Checker.
type Tools struct {
	Checker *checker.Checker
}

// Register adds every tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, MetadataClassifyIngredients, t.ClassifyIngredients)
	mcp.AddTool(server, MetadataCheckBarcode, t.CheckBarcode)
	mcp.AddTool(server, MetadataSearchDish, t.SearchDish)
}

// NewServer returns an MCP server with every tool registered.
func NewServer(c *checker.Checker, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "glutenguard", Version: version}, nil)
	(&Tools{Checker: c}).Register(server)
	return server
}

// ClassifyIngredients classifies the given ingredient text. An empty list is
// reported as status error, not as a tool failure.
func (t *Tools) ClassifyIngredients(ctx context.Context, _ *mcp.CallToolRequest, input InputClassifyIngredients) (*mcp.CallToolResult, OutputCheck, error) {
	chk := t.Checker.CheckText(ctx, input.Ingredients)
	return nil, OutputCheck{
		Result:         verdict(chk),
		PhrasesVersion: chk.PhrasesVersion,
	}, nil
}

// CheckBarcode looks up a product and classifies its ingredients.
func (t *Tools) CheckBarcode(ctx context.Context, _ *mcp.CallToolRequest, input InputCheckBarcode) (*mcp.CallToolResult, OutputCheck, error) {
	if strings.TrimSpace(input.Barcode) == "" {
		return nil, OutputCheck{}, fmt.Errorf("barcode is required")
	}
	chk, err := t.Checker.CheckBarcode(ctx, input.Barcode)
	if errors.Is(err, checker.ErrProductNotFound) {
		return nil, OutputCheck{}, fmt.Errorf("no product with barcode %s in Open Food Facts", input.Barcode)
	}
	if err != nil {
		return nil, OutputCheck{}, err
	}
	return nil, OutputCheck{
		Result:         verdict(*chk),
		PhrasesVersion: chk.PhrasesVersion,
	}, nil
}

// SearchDish searches by name and classifies every match.
func (t *Tools) SearchDish(ctx context.Context, _ *mcp.CallToolRequest, input InputSearchDish) (*mcp.CallToolResult, OutputSearchDish, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, OutputSearchDish{}, fmt.Errorf("name is required")
	}
	checks, err := t.Checker.CheckName(ctx, input.Name, input.Limit)
	if err != nil {
		return nil, OutputSearchDish{}, err
	}

	out := OutputSearchDish{
		Matches:        make([]Verdict, len(checks)),
		PhrasesVersion: t.Checker.PhrasesVersion(),
	}
	for i, chk := range checks {
		out.Matches[i] = verdict(chk)
	}
	return nil, out, nil
}

func verdict(chk checker.Check) Verdict {
	v := Verdict{
		Source:           string(chk.Source),
		Status:           string(chk.Result.Status),
		Message:          chk.Result.Message,
		MatchedPhrases:   nonNil(chk.Result.MatchedPhrases),
		AmbiguousPhrases: nonNil(chk.Result.AmbiguousPhrases),
		Cached:           chk.Cached,
	}
	if chk.Source != checker.SourceText {
		v.Name = chk.Title()
		v.Ingredients = chk.Ingredients()
	}
	if chk.Product != nil {
		v.Barcode = chk.Product.Barcode
	}
	if d := chk.Dish; d != nil {
		v.TypicalRisk = string(d.Risk)
		v.Notes = d.Notes
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
