package checker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shahar-caura/glutenguard/internal/classify"
	"github.com/shahar-caura/glutenguard/internal/dishes"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/provider"
	"github.com/shahar-caura/glutenguard/internal/scanner"
	"github.com/shahar-caura/glutenguard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	digestives = "5000159484695"
	riceCakes  = "4006381333931"
)

type fakeProducts struct {
	mu        sync.Mutex
	products  map[string]provider.Product
	search    []provider.Product
	err       error
	searchErr error
	lookups   int
	searches  int
}

func (f *fakeProducts) ProductByBarcode(_ context.Context, barcode string) (*provider.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[barcode]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) SearchProducts(_ context.Context, _ string, limit int) ([]provider.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.search) > limit {
		return f.search[:limit], nil
	}
	return f.search, nil
}

type fakeRecipes struct {
	recipes []provider.Recipe
	err     error
	calls   int
}

func (f *fakeRecipes) SearchRecipes(_ context.Context, _ string) ([]provider.Recipe, error) {
	f.calls++
	return f.recipes, f.err
}

// failingStore fails every write.
type failingStore struct{ *store.Store }

func (failingStore) SetCached(context.Context, string, store.Record) error {
	return errors.New("disk full")
}

func (failingStore) AppendHistory(context.Context, store.HistoryEntry) error {
	return errors.New("disk full")
}

func newProducts() *fakeProducts {
	return &fakeProducts{products: map[string]provider.Product{
		digestives: {Barcode: digestives, Name: "Digestive Biscuits", IngredientsText: "Wheat flour, sugar, malt extract"},
		riceCakes:  {Barcode: riceCakes, Name: "Rice Cakes", IngredientsText: "brown rice, salt"},
	}}
}

func newChecker(t *testing.T, products provider.ProductLookup, recipes provider.RecipeSource) (*Checker, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), store.Options{HistoryLimit: 100})
	c := New(Deps{
		Phrases:  phrases.NewProvider(phrases.Default(), nil),
		Products: products,
		Recipes:  recipes,
		Dishes:   dishes.Default(),
		Store:    st,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, st
}

func TestCheckText(t *testing.T) {
	c, st := newChecker(t, nil, nil)

	chk := c.CheckText(context.Background(), "rice flour, vegetable oil, salt")

	assert.Equal(t, SourceText, chk.Source)
	assert.Equal(t, classify.StatusSafe, chk.Result.Status)
	assert.Equal(t, phrases.Default().Version, chk.PhrasesVersion)
	assert.NotEqual(t, [16]byte{}, [16]byte(chk.ID))
	assert.False(t, chk.CheckedAt.IsZero())

	h, err := st.History(context.Background())
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, chk.ID.String(), h[0].ID)
	assert.Equal(t, "text", h[0].Source)
}

func TestCheckText_EmptyIsErrorStatus(t *testing.T) {
	c, _ := newChecker(t, nil, nil)

	chk := c.CheckText(context.Background(), "   ")
	assert.Equal(t, classify.StatusError, chk.Result.Status)
	assert.Equal(t, classify.MessageNoIngredients, chk.Result.Message)
}

func TestCheckText_UsesReloadedLists(t *testing.T) {
	c, _ := newChecker(t, nil, nil)
	c.deps.Phrases.Replace(&phrases.Set{Version: "test", Gluten: []string{"quinoa"}})

	chk := c.CheckText(context.Background(), "quinoa salad")
	assert.Equal(t, classify.StatusUnsafe, chk.Result.Status)
	assert.Equal(t, "test", chk.PhrasesVersion)
}

func TestCheckBarcode_LookupThenCache(t *testing.T) {
	products := newProducts()
	c, st := newChecker(t, products, nil)
	ctx := context.Background()

	chk, err := c.CheckBarcode(ctx, "5 000159 484695")
	require.NoError(t, err)
	assert.Equal(t, SourceBarcode, chk.Source)
	assert.Equal(t, digestives, chk.Query)
	assert.False(t, chk.Cached)
	assert.Equal(t, classify.StatusUnsafe, chk.Result.Status)
	assert.Contains(t, chk.Result.MatchedPhrases, "wheat flour")
	assert.Equal(t, "Digestive Biscuits", chk.Title())

	rec, err := st.GetCached(ctx, scanner.GTIN14(digestives))
	require.NoError(t, err)
	assert.Equal(t, "Digestive Biscuits", rec.Name)

	chk2, err := c.CheckBarcode(ctx, digestives)
	require.NoError(t, err)
	assert.True(t, chk2.Cached)
	assert.Equal(t, chk.Result, chk2.Result)
	assert.Equal(t, 1, products.lookups, "second check served from cache")
}

func TestCheckBarcode_CachedEntryReclassifiedWithCurrentLists(t *testing.T) {
	c, _ := newChecker(t, newProducts(), nil)
	ctx := context.Background()

	_, err := c.CheckBarcode(ctx, riceCakes)
	require.NoError(t, err)

	c.deps.Phrases.Replace(&phrases.Set{Version: "strict", Gluten: []string{"brown rice"}})
	chk, err := c.CheckBarcode(ctx, riceCakes)
	require.NoError(t, err)
	assert.True(t, chk.Cached)
	assert.Equal(t, classify.StatusUnsafe, chk.Result.Status)
	assert.Equal(t, "strict", chk.PhrasesVersion)
}

func TestCheckBarcode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		products provider.ProductLookup
		wantErr  error
	}{
		{name: "invalid barcode", code: "12345", products: newProducts(), wantErr: scanner.ErrInvalidBarcode},
		{name: "unknown product", code: "96385074", products: newProducts(), wantErr: ErrProductNotFound},
		{name: "lookup failure", code: digestives, products: &fakeProducts{err: errors.New("connection refused")}, wantErr: ErrLookupFailed},
		{name: "no product source", code: digestives, products: nil, wantErr: ErrLookupFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, st := newChecker(t, tt.products, nil)

			_, err := c.CheckBarcode(context.Background(), tt.code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			h, err := st.History(context.Background())
			require.NoError(t, err)
			assert.Empty(t, h, "failed lookups are not recorded")
		})
	}
}

func TestCheckBarcode_LookupFailureKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	c, _ := newChecker(t, &fakeProducts{err: cause}, nil)

	_, err := c.CheckBarcode(context.Background(), digestives)
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrProductNotFound))
}

func TestCheckBarcode_StoreFailuresAreBestEffort(t *testing.T) {
	st := store.New(store.NewMemoryKV(), store.Options{})
	c := New(Deps{
		Phrases:  phrases.NewProvider(phrases.Default(), nil),
		Products: newProducts(),
		Dishes:   dishes.Default(),
		Store:    failingStore{st},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	chk, err := c.CheckBarcode(context.Background(), riceCakes)
	require.NoError(t, err)
	assert.Equal(t, classify.StatusSafe, chk.Result.Status)
}

func TestCheckBarcode_MissingIngredientsIsErrorStatus(t *testing.T) {
	products := &fakeProducts{products: map[string]provider.Product{
		digestives: {Barcode: digestives, Name: "Mystery"},
	}}
	c, _ := newChecker(t, products, nil)

	chk, err := c.CheckBarcode(context.Background(), digestives)
	require.NoError(t, err)
	assert.Equal(t, classify.StatusError, chk.Result.Status)
}

func TestCheckName_ExactDishFirst(t *testing.T) {
	recipes := &fakeRecipes{recipes: []provider.Recipe{{ID: "1", Name: "Pad Thai", IngredientsText: "rice noodles, soy sauce"}}}
	c, _ := newChecker(t, nil, recipes)

	checks, err := c.CheckName(context.Background(), "Pad Thai", 5)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(checks), 2)

	assert.Equal(t, SourceDish, checks[0].Source)
	assert.Equal(t, "pad thai", checks[0].Dish.Name)
	assert.Equal(t, dishes.RiskCaution, checks[0].Dish.Risk)
	assert.Equal(t, classify.StatusSafe, checks[0].Result.Status, "risk label never replaces the classifier result")

	assert.Equal(t, SourceRecipe, checks[1].Source)
	assert.Equal(t, classify.StatusUnsafe, checks[1].Result.Status)
}

func TestCheckName_FallsThroughToProducts(t *testing.T) {
	products := newProducts()
	products.search = []provider.Product{
		{Barcode: "1", Name: "Corn Flakes", IngredientsText: "maize, barley malt extract"},
		{Barcode: "1", Name: "Corn Flakes duplicate"},
		{Barcode: "2", Name: "GF Corn Flakes", IngredientsText: "maize, sugar"},
	}
	c, _ := newChecker(t, products, &fakeRecipes{})

	checks, err := c.CheckName(context.Background(), "corn flakes", 10)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, SourceProduct, checks[0].Source)
	assert.Equal(t, classify.StatusUnsafe, checks[0].Result.Status)
	assert.Equal(t, "2", checks[1].Product.Barcode)
}

func TestCheckName_LimitSkipsRemoteSources(t *testing.T) {
	products := newProducts()
	recipes := &fakeRecipes{}
	c, _ := newChecker(t, products, recipes)

	checks, err := c.CheckName(context.Background(), "salad", 1)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, SourceDish, checks[0].Source)
	assert.Equal(t, 0, recipes.calls)
	assert.Equal(t, 0, products.searches)
}

func TestCheckName_PartialFailureIsNotAnError(t *testing.T) {
	products := newProducts()
	products.search = []provider.Product{{Barcode: "9", Name: "Seitan Strips", IngredientsText: "vital wheat gluten"}}
	c, _ := newChecker(t, products, &fakeRecipes{err: errors.New("timeout")})

	checks, err := c.CheckName(context.Background(), "seitan strips", 5)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, SourceProduct, checks[0].Source)
}

func TestCheckName_AllSourcesFailed(t *testing.T) {
	products := &fakeProducts{searchErr: errors.New("503")}
	c, _ := newChecker(t, products, &fakeRecipes{err: errors.New("timeout")})

	_, err := c.CheckName(context.Background(), "xyzzy", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookupFailed))
}

func TestCheckName_NothingFound(t *testing.T) {
	c, _ := newChecker(t, newProducts(), &fakeRecipes{})

	checks, err := c.CheckName(context.Background(), "xyzzy", 5)
	require.NoError(t, err)
	assert.NotNil(t, checks)
	assert.Empty(t, checks)
}

func TestCheckName_EmptyQuery(t *testing.T) {
	c, _ := newChecker(t, nil, nil)

	_, err := c.CheckName(context.Background(), "  ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestFavorites(t *testing.T) {
	c, _ := newChecker(t, newProducts(), nil)
	ctx := context.Background()

	rec, err := c.AddFavorite(ctx, riceCakes)
	require.NoError(t, err)
	assert.Equal(t, "Rice Cakes", rec.Name)
	assert.Equal(t, classify.StatusSafe, rec.Result.Status)
	assert.False(t, rec.SavedAt.IsZero())

	_, err = c.AddFavorite(ctx, digestives)
	require.NoError(t, err)

	favs, err := c.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 2)

	c.deps.Phrases.Replace(&phrases.Set{Version: "strict", Gluten: []string{"rice"}})
	favs, err = c.Favorites(ctx)
	require.NoError(t, err)
	for _, f := range favs {
		if f.Barcode == riceCakes {
			assert.Equal(t, classify.StatusUnsafe, f.Result.Status)
		}
	}

	require.NoError(t, c.RemoveFavorite(ctx, riceCakes))
	err = c.RemoveFavorite(ctx, riceCakes)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)

	err = c.RemoveFavorite(ctx, "nope")
	assert.ErrorIs(t, err, scanner.ErrInvalidBarcode)
}

func TestCheckBarcode_CacheKeepsProductDetails(t *testing.T) {
	products := &fakeProducts{products: map[string]provider.Product{
		digestives: {
			Barcode:         digestives,
			Name:            "Digestive Biscuits",
			IngredientsText: "Wheat flour, sugar",
			ImageURL:        "https://images.example.com/digestives.jpg",
			Allergens:       []string{"en:gluten"},
			Traces:          []string{"en:milk"},
			Labels:          []string{"en:vegetarian"},
		},
	}}
	c, _ := newChecker(t, products, nil)
	ctx := context.Background()

	first, err := c.CheckBarcode(ctx, digestives)
	require.NoError(t, err)
	second, err := c.CheckBarcode(ctx, digestives)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Product, second.Product)
	assert.Equal(t, 1, products.lookups)
}

// Open Food Facts answers a UPC-A lookup with the zero-padded EAN-13.
func TestFavorites_AnyFormOfTheSameCode(t *testing.T) {
	const upc = "036000291452"
	products := &fakeProducts{products: map[string]provider.Product{
		upc: {Barcode: "0" + upc, Name: "Tissues", IngredientsText: "cellulose"},
	}}
	c, _ := newChecker(t, products, nil)
	ctx := context.Background()

	rec, err := c.AddFavorite(ctx, upc)
	require.NoError(t, err)
	assert.Equal(t, "0"+upc, rec.Barcode)
	require.NoError(t, c.RemoveFavorite(ctx, upc))

	_, err = c.AddFavorite(ctx, "0-36000-29145-2")
	require.NoError(t, err)
	require.NoError(t, c.RemoveFavorite(ctx, "0"+upc))

	favs, err := c.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestAddFavoriteFromCheck(t *testing.T) {
	products := newProducts()
	c, _ := newChecker(t, products, nil)
	ctx := context.Background()

	chk, err := c.CheckBarcode(ctx, riceCakes)
	require.NoError(t, err)

	rec, err := c.AddFavoriteFromCheck(ctx, *chk)
	require.NoError(t, err)
	assert.Equal(t, "Rice Cakes", rec.Name)
	assert.Equal(t, 1, products.lookups)

	h, err := c.History(ctx)
	require.NoError(t, err)
	assert.Len(t, h, 1, "saving a favorite does not re-check")

	_, err = c.AddFavoriteFromCheck(ctx, c.CheckText(ctx, "rice"))
	assert.ErrorContains(t, err, "favorite needs a barcode check")
}

func TestAddFavorite_UnknownProduct(t *testing.T) {
	c, _ := newChecker(t, newProducts(), nil)

	_, err := c.AddFavorite(context.Background(), "96385074")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestHistory(t *testing.T) {
	c, _ := newChecker(t, newProducts(), nil)
	ctx := context.Background()

	c.CheckText(ctx, "wheat")
	_, err := c.CheckBarcode(ctx, riceCakes)
	require.NoError(t, err)

	h, err := c.History(ctx)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "barcode", h[0].Source)
	assert.Equal(t, "Rice Cakes", h[0].Name)
	assert.Equal(t, classify.StatusUnsafe, h[1].Status)
}

func TestCheck_TitleAndIngredients(t *testing.T) {
	d := dishes.Dish{Name: "hummus", Ingredients: "chickpeas"}
	assert.Equal(t, "hummus", Check{Query: "hum", Dish: &d}.Title())
	assert.Equal(t, "chickpeas", Check{Dish: &d}.Ingredients())
	assert.Equal(t, "123", Check{Product: &provider.Product{Barcode: "123"}}.Title())
	assert.Equal(t, "raw text", Check{Query: "raw text"}.Ingredients())
}
