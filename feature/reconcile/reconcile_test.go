package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"catalog-sync/core/utils"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/inventory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateCategory(ctx context.Context, code string) (inventory.Meta, error) {
	args := m.Called(ctx, code)
	meta, _ := args.Get(0).(inventory.Meta)
	return meta, args.Error(1)
}

func testTemplates() *inventory.Templates {
	return inventory.NewTemplates(inventory.Config{
		BaseURL:             "https://api.example/1.2",
		VAT:                 20,
		CurrencyID:          "cur",
		PriceTypeID:         "pt",
		PriceTypeName:       "Sale",
		URLAttributeID:      "url-attr",
		URLAttributeName:    "URL",
		VendorAttributeID:   "vendor-attr",
		VendorAttributeName: "Vendor",
	})
}

func offer(code, price string) feed.Offer {
	return feed.Offer{
		ID:           code,
		ProductID:    code,
		Name:         "Product " + code,
		ExternalCode: code,
		Price:        decimal.RequireFromString(price),
	}
}

func remote(code string, value int64) inventory.Record {
	return inventory.Record{
		"id":           "remote-" + code,
		"externalCode": code,
		"name":         "Remote " + code,
		"salePrices":   []any{map[string]any{"value": json.Number(strconv.FormatInt(value, 10))}},
	}
}

func newCache(t *testing.T, folders map[string]inventory.Record, dryRun bool) (*CategoryCache, *mockCreator) {
	t.Helper()
	creator := new(mockCreator)
	return NewCategoryCache(folders, creator, dryRun, zap.NewNop()), creator
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"9.99", 999},
		{"5.00", 500},
		{"5", 500},
		{"10.005", 1001},
		{"10.004", 1000},
		{"0.015", 2},
		{"0.025", 3},
		{"1234.5678", 123457},
		{"0", 0},
		{"-1.005", -101},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestBuildPlan_Scenario(t *testing.T) {
	a := offer("A", "9.99")
	a.CategoryID = utils.Some("shoes")
	b := offer("B", "5.00")

	offers := map[string]feed.Offer{"A": a, "B": b}
	products := []inventory.Record{remote("A", 1099)}

	cache, creator := newCache(t, nil, false)

	plan, err := BuildPlan(context.Background(), offers, products, cache, testTemplates())
	require.NoError(t, err)

	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "A", plan.Updates[0].ExternalCode())
	price, _ := plan.Updates[0].SalePrice()
	assert.Equal(t, int64(999), price)
	assert.Equal(t, "remote-A", plan.Updates[0]["id"])

	require.Len(t, plan.Creates, 1)
	assert.Equal(t, "B", plan.Creates[0].ExternalCode())
	assert.NotContains(t, plan.Creates[0], "productFolder")
	assert.NotContains(t, plan.Creates[0], "id")

	creator.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)

	assert.Equal(t, Summary{Remote: 1, Offers: 2, Updates: 1, Creates: 1}, plan.Summary)
	assert.Len(t, offers, 2)
}

func TestBuildPlan_UnchangedAndUntouched(t *testing.T) {
	offers := map[string]feed.Offer{"A": offer("A", "10.005")}
	products := []inventory.Record{remote("A", 1001), remote("Z", 42)}

	cache, _ := newCache(t, nil, false)
	plan, err := BuildPlan(context.Background(), offers, products, cache, testTemplates())
	require.NoError(t, err)

	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Creates)
	assert.Equal(t, 1, plan.Summary.Unchanged)
	assert.Equal(t, 1, plan.Summary.Untouched)

	z, _ := products[1].SalePrice()
	assert.Equal(t, int64(42), z)
}

func TestBuildPlan_PricesMatchAfterUpdate(t *testing.T) {
	offers := map[string]feed.Offer{
		"A": offer("A", "1.10"),
		"B": offer("B", "2.20"),
		"C": offer("C", "3.30"),
	}
	products := []inventory.Record{remote("A", 100), remote("B", 220), remote("C", 0)}

	cache, _ := newCache(t, nil, false)
	plan, err := BuildPlan(context.Background(), offers, products, cache, testTemplates())
	require.NoError(t, err)

	require.Len(t, plan.Updates, 2)
	for _, update := range plan.Updates {
		price, ok := update.SalePrice()
		require.True(t, ok)
		assert.Equal(t, MinorUnits(offers[update.ExternalCode()].Price), price)
	}
}

func TestBuildPlan_UpdatesAndCreatesDisjoint(t *testing.T) {
	offers := map[string]feed.Offer{}
	var products []inventory.Record
	for _, code := range []string{"a", "b", "c", "d", "e", "f"} {
		offers[code] = offer(code, "1.00")
	}
	products = append(products, remote("a", 100), remote("b", 200), remote("x", 300))

	cache, _ := newCache(t, nil, false)
	plan, err := BuildPlan(context.Background(), offers, products, cache, testTemplates())
	require.NoError(t, err)

	seen := map[string]int{}
	for _, p := range plan.Payloads() {
		seen[p.ExternalCode()]++
	}
	for code := range offers {
		if code == "a" {
			assert.Zero(t, seen[code])
			continue
		}
		assert.Equal(t, 1, seen[code], code)
	}
	assert.Zero(t, seen["x"])

	creates := make([]string, 0, len(plan.Creates))
	for _, c := range plan.Creates {
		creates = append(creates, c.ExternalCode())
	}
	assert.Equal(t, []string{"c", "d", "e", "f"}, creates)
}

func TestBuildPlan_MissingSalePrice(t *testing.T) {
	offers := map[string]feed.Offer{"A": offer("A", "7.50")}
	products := []inventory.Record{{"externalCode": "A", "name": "bare"}}

	cache, _ := newCache(t, nil, false)
	plan, err := BuildPlan(context.Background(), offers, products, cache, testTemplates())
	require.NoError(t, err)

	require.Len(t, plan.Updates, 1)
	price, ok := plan.Updates[0].SalePrice()
	require.True(t, ok)
	assert.Equal(t, int64(750), price)
}

func TestBuildPlan_CreationPayload(t *testing.T) {
	o := offer("N", "12.34")
	o.URL = utils.Some("https://shop.example/n")
	o.Vendor = utils.Some("Acme")
	o.Article = utils.Some("ART")
	o.Description = utils.Some("desc")
	o.CategoryID = utils.Some("10")

	folderMeta := map[string]any{"href": "https://api.example/1.2/entity/productfolder/f10"}
	folders := map[string]inventory.Record{"10": {"externalCode": "10", "meta": folderMeta}}

	cache, creator := newCache(t, folders, false)
	plan, err := BuildPlan(context.Background(), map[string]feed.Offer{"N": o}, nil, cache, testTemplates())
	require.NoError(t, err)
	require.Len(t, plan.Creates, 1)

	p := plan.Creates[0]
	assert.Equal(t, "Product N", p["name"])
	assert.Equal(t, "N", p["code"])
	assert.Equal(t, 20, p["vat"])
	assert.Equal(t, true, p["vatEnabled"])
	assert.Equal(t, 20, p["effectiveVat"])
	assert.Equal(t, true, p["effectiveVatEnabled"])
	assert.Equal(t, "ART", p["article"])
	assert.Equal(t, "desc", p["description"])

	price, _ := p.SalePrice()
	assert.Equal(t, int64(1234), price)

	attrs := p["attributes"].([]any)
	require.Len(t, attrs, 2)
	assert.Equal(t, "https://shop.example/n", attrs[0].(map[string]any)["value"])
	assert.Equal(t, "Acme", attrs[1].(map[string]any)["value"])

	folder := p["productFolder"].(map[string]any)
	assert.Equal(t, inventory.Meta(folderMeta), folder["meta"])

	creator.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestBuildPlan_CategoryCreatedOnce(t *testing.T) {
	offers := map[string]feed.Offer{}
	for _, code := range []string{"p1", "p2", "p3", "p4"} {
		o := offer(code, "1")
		o.CategoryID = utils.Some("shoes")
		offers[code] = o
	}

	cache, creator := newCache(t, nil, false)
	shoes := inventory.Meta{"href": "https://api.example/1.2/entity/productfolder/shoes"}
	creator.On("CreateCategory", mock.Anything, "shoes").Return(shoes, nil).Once()

	plan, err := BuildPlan(context.Background(), offers, nil, cache, testTemplates())
	require.NoError(t, err)

	creator.AssertNumberOfCalls(t, "CreateCategory", 1)
	assert.Equal(t, 1, plan.Summary.CategoriesCreated)
	for _, p := range plan.Creates {
		assert.Equal(t, shoes, p["productFolder"].(map[string]any)["meta"])
	}
}

func TestBuildPlan_CategoryCreationFails(t *testing.T) {
	o := offer("A", "1")
	o.CategoryID = utils.Some("broken")

	cache, creator := newCache(t, nil, false)
	boom := errors.New("boom")
	creator.On("CreateCategory", mock.Anything, "broken").Return(nil, boom)

	_, err := BuildPlan(context.Background(), map[string]feed.Offer{"A": o}, nil, cache, testTemplates())
	require.ErrorIs(t, err, boom)
}

func TestBuildPlan_DryRunCategories(t *testing.T) {
	offers := map[string]feed.Offer{}
	for _, code := range []string{"p1", "p2"} {
		o := offer(code, "1")
		o.CategoryID = utils.Some("new")
		offers[code] = o
	}

	cache, creator := newCache(t, nil, true)
	plan, err := BuildPlan(context.Background(), offers, nil, cache, testTemplates())
	require.NoError(t, err)

	creator.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"new"}, cache.Pending())
	assert.Equal(t, 1, plan.Summary.CategoriesPending)
	for _, p := range plan.Creates {
		assert.NotContains(t, p, "productFolder")
	}
}

func TestCategoryCache_ConcurrentResolve(t *testing.T) {
	cache, creator := newCache(t, nil, false)
	meta := inventory.Meta{"href": "x"}
	creator.On("CreateCategory", mock.Anything, "c").Return(meta, nil).Once()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Resolve(context.Background(), "c")
			assert.NoError(t, err)
			assert.Equal(t, meta, got)
		}()
	}
	wg.Wait()

	creator.AssertNumberOfCalls(t, "CreateCategory", 1)
	assert.Equal(t, []string{"c"}, cache.Created())
}

func TestPlan_PayloadsOrder(t *testing.T) {
	plan := &Plan{
		Updates: []inventory.Record{{"externalCode": "u"}},
		Creates: []inventory.Record{{"externalCode": "c1"}, {"externalCode": "c2"}},
	}
	payloads := plan.Payloads()
	require.Len(t, payloads, 3)
	assert.Equal(t, "u", payloads[0].ExternalCode())
	assert.Equal(t, "c2", payloads[2].ExternalCode())
}

func TestCategoryCache_Annotate(t *testing.T) {
	folders := map[string]inventory.Record{
		"10": {"externalCode": "10", "meta": map[string]any{"href": "f10"}},
	}
	cache, _ := newCache(t, folders, true)
	_, err := cache.Resolve(context.Background(), "20")
	require.NoError(t, err)

	categories := map[string]feed.Category{
		"10": {ID: "10", Name: "Phones"},
		"20": {ID: "20", Name: "Pending"},
		"30": {ID: "30", Name: "Unknown"},
	}
	assert.Equal(t, 1, cache.Annotate(categories))

	remote, ok := categories["10"].Remote.Get()
	require.True(t, ok)
	assert.Equal(t, "f10", remote["href"])
	assert.False(t, categories["20"].Remote.IsPresent())
	assert.False(t, categories["30"].Remote.IsPresent())
}
