package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/classify"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/scanner"
	"github.com/shahar-caura/glutenguard/internal/store"
)

// Handlers implements the generated StrictServerInterface.
type Handlers struct {
	Version   string
	StartTime time.Time
	Checker   *checker.Checker
	Phrases   *phrases.Provider
	Hub       *SSEHub // optional; nil disables event publishing
	Logger    *slog.Logger
}

func (h *Handlers) GetHealth(_ context.Context, _ GetHealthRequestObject) (GetHealthResponseObject, error) {
	return GetHealth200JSONResponse{
		Status:         "ok",
		Version:        h.Version,
		UptimeSeconds:  int(time.Since(h.StartTime).Seconds()),
		PhrasesVersion: h.Phrases.Current().Version,
	}, nil
}

func (h *Handlers) ClassifyIngredients(ctx context.Context, request ClassifyIngredientsRequestObject) (ClassifyIngredientsResponseObject, error) {
	var text string
	if request.Body != nil && request.Body.Ingredients != nil {
		text = *request.Body.Ingredients
	}
	chk := h.Checker.CheckText(ctx, text)
	h.publish("check", chk)
	return ClassifyIngredients200JSONResponse(toCheck(chk)), nil
}

func (h *Handlers) GetProduct(ctx context.Context, request GetProductRequestObject) (GetProductResponseObject, error) {
	chk, err := h.Checker.CheckBarcode(ctx, request.Barcode)
	switch {
	case errors.Is(err, scanner.ErrInvalidBarcode):
		return GetProduct400JSONResponse{BadRequestJSONResponse(apiError(400, err))}, nil
	case errors.Is(err, checker.ErrProductNotFound):
		return GetProduct404JSONResponse{NotFoundJSONResponse(apiError(404, err))}, nil
	case err != nil:
		h.logger().Warn("product lookup failed", "barcode", request.Barcode, "error", err)
		return GetProduct502JSONResponse{BadGatewayJSONResponse(apiError(502, err))}, nil
	}
	h.publish("check", chk)
	return GetProduct200JSONResponse(toCheck(*chk)), nil
}

func (h *Handlers) SearchByName(ctx context.Context, request SearchByNameRequestObject) (SearchByNameResponseObject, error) {
	limit := checker.DefaultLimit
	if request.Params.Limit != nil {
		limit = *request.Params.Limit
	}

	checks, err := h.Checker.CheckName(ctx, request.Params.Q, limit)
	switch {
	case errors.Is(err, checker.ErrEmptyQuery):
		return SearchByName400JSONResponse{BadRequestJSONResponse(apiError(400, err))}, nil
	case err != nil:
		h.logger().Warn("name search failed", "query", request.Params.Q, "error", err)
		return SearchByName502JSONResponse{BadGatewayJSONResponse(apiError(502, err))}, nil
	}

	out := make([]Check, len(checks))
	for i, chk := range checks {
		out[i] = toCheck(chk)
	}
	if len(checks) > 0 {
		h.publish("check", checks[0])
	}
	return SearchByName200JSONResponse{Checks: out, Total: len(out)}, nil
}

func (h *Handlers) ListFavorites(ctx context.Context, _ ListFavoritesRequestObject) (ListFavoritesResponseObject, error) {
	recs, err := h.Checker.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	favs := make([]Favorite, len(recs))
	for i, r := range recs {
		favs[i] = toFavorite(r)
	}
	return ListFavorites200JSONResponse{Favorites: favs, Total: len(favs)}, nil
}

func (h *Handlers) AddFavorite(ctx context.Context, request AddFavoriteRequestObject) (AddFavoriteResponseObject, error) {
	rec, err := h.Checker.AddFavorite(ctx, request.Barcode)
	switch {
	case errors.Is(err, scanner.ErrInvalidBarcode):
		return AddFavorite400JSONResponse{BadRequestJSONResponse(apiError(400, err))}, nil
	case errors.Is(err, checker.ErrProductNotFound):
		return AddFavorite404JSONResponse{NotFoundJSONResponse(apiError(404, err))}, nil
	case errors.Is(err, checker.ErrLookupFailed):
		h.logger().Warn("favorite lookup failed", "barcode", request.Barcode, "error", err)
		return AddFavorite502JSONResponse{BadGatewayJSONResponse(apiError(502, err))}, nil
	case err != nil:
		return nil, err
	}
	h.publish("favorites", map[string]string{"action": "added", "barcode": rec.Barcode})
	return AddFavorite200JSONResponse(toFavorite(*rec)), nil
}

func (h *Handlers) RemoveFavorite(ctx context.Context, request RemoveFavoriteRequestObject) (RemoveFavoriteResponseObject, error) {
	err := h.Checker.RemoveFavorite(ctx, request.Barcode)
	switch {
	case errors.Is(err, scanner.ErrInvalidBarcode):
		return RemoveFavorite400JSONResponse{BadRequestJSONResponse(apiError(400, err))}, nil
	case errors.Is(err, checker.ErrFavoriteNotFound):
		return RemoveFavorite404JSONResponse{NotFoundJSONResponse(apiError(404, err))}, nil
	case err != nil:
		return nil, err
	}
	h.publish("favorites", map[string]string{"action": "removed", "barcode": request.Barcode})
	return RemoveFavorite204Response{}, nil
}

func (h *Handlers) ListHistory(ctx context.Context, request ListHistoryRequestObject) (ListHistoryResponseObject, error) {
	entries, err := h.Checker.History(ctx)
	if err != nil {
		return nil, err
	}
	if request.Params.Limit != nil && *request.Params.Limit < len(entries) {
		entries = entries[:*request.Params.Limit]
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			Id:        e.ID,
			Source:    e.Source,
			Query:     e.Query,
			Name:      optional(e.Name),
			Status:    ClassificationStatus(e.Status),
			CheckedAt: e.CheckedAt,
		}
	}
	return ListHistory200JSONResponse{Entries: out, Total: len(out)}, nil
}

func (h *Handlers) GetPhrases(_ context.Context, _ GetPhrasesRequestObject) (GetPhrasesResponseObject, error) {
	return GetPhrases200JSONResponse(toPhraseLists(h.Phrases.Current())), nil
}

func (h *Handlers) publish(event string, v any) {
	if h.Hub != nil {
		h.Hub.Publish(event, v)
	}
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func apiError(code int, err error) Error {
	return Error{Code: code, Message: err.Error()}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalSlice(s []string) *[]string {
	if len(s) == 0 {
		return nil
	}
	return &s
}

func toResult(r classify.Result) ClassificationResult {
	return ClassificationResult{
		Status:           ClassificationStatus(r.Status),
		Message:          r.Message,
		MatchedPhrases:   nonNil(r.MatchedPhrases),
		AmbiguousPhrases: nonNil(r.AmbiguousPhrases),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// toCheck converts a checker.Check to the API Check type.
func toCheck(chk checker.Check) Check {
	c := Check{
		Id:             chk.ID,
		Source:         CheckSource(chk.Source),
		Query:          chk.Query,
		Result:         toResult(chk.Result),
		PhrasesVersion: chk.PhrasesVersion,
		Cached:         chk.Cached,
		CheckedAt:      chk.CheckedAt,
	}

	if p := chk.Product; p != nil {
		c.Product = &Product{
			Barcode:         p.Barcode,
			Name:            p.Name,
			Brand:           optional(p.Brand),
			IngredientsText: p.IngredientsText,
			ImageUrl:        optional(p.ImageURL),
			Allergens:       optionalSlice(p.Allergens),
			Traces:          optionalSlice(p.Traces),
			Labels:          optionalSlice(p.Labels),
		}
	}
	if d := chk.Dish; d != nil {
		c.Dish = &Dish{
			Name:        d.Name,
			Aliases:     optionalSlice(d.Aliases),
			Ingredients: d.Ingredients,
			Risk:        DishRisk(d.Risk),
			Notes:       optional(d.Notes),
		}
	}
	if r := chk.Recipe; r != nil {
		c.Recipe = &Recipe{
			Id:              r.ID,
			Name:            r.Name,
			Source:          optional(r.Source),
			IngredientsText: r.IngredientsText,
		}
	}
	return c
}

func toFavorite(r store.Record) Favorite {
	return Favorite{
		Barcode:         r.Barcode,
		Name:            r.Name,
		Brand:           optional(r.Brand),
		IngredientsText: r.IngredientsText,
		Result:          toResult(r.Result),
		SavedAt:         r.SavedAt,
	}
}

func toPhraseLists(s *phrases.Set) PhraseLists {
	return PhraseLists{
		Version:   s.Version,
		Gluten:    nonNil(s.Gluten),
		Ambiguous: nonNil(s.Ambiguous),
	}
}
