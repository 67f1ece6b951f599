package repo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCatalog() *Catalog {
	return NewCatalog(clock.NewStepper(epoch, time.Second))
}

func food(t *testing.T, name string, price int64, class domain.FoodClass, calories int) *domain.Food {
	t.Helper()
	f, err := domain.NewFood(0, name, domain.NewMoney(price, 0), class, calories)
	require.NoError(t, err)
	return f
}

func electronics(t *testing.T, name string, price int64) *domain.Electronics {
	t.Helper()
	e, err := domain.NewElectronics(0, name, domain.NewMoney(price, 0), domain.BrandApple, 6)
	require.NoError(t, err)
	return e
}

func apparel(t *testing.T, name string, price int64) *domain.Apparel {
	t.Helper()
	a, err := domain.NewApparel(0, name, domain.NewMoney(price, 0), domain.SizeS, "Lana")
	require.NoError(t, err)
	return a
}

func ids(items []domain.Product) []int {
	out := make([]int, len(items))
	for i, p := range items {
		out[i] = p.ID()
	}
	return out
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, 1, c.Add(food(t, "Arroz", 10, domain.Perishable, 200)))
	assert.Equal(t, 2, c.Add(electronics(t, "TV", 500)))
	assert.Equal(t, 3, c.Add(apparel(t, "Camisa", 15)))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{1, 2, 3}, ids(c.GetAll()))
}

func TestIDsAreNeverReused(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 1, domain.Perishable, 1))
	c.Add(food(t, "b", 1, domain.Perishable, 1))

	require.NoError(t, c.Delete(2))
	assert.Equal(t, 3, c.Add(food(t, "c", 1, domain.Perishable, 1)))
}

func TestGetByID(t *testing.T) {
	c := newTestCatalog()
	id := c.Add(electronics(t, "TV", 500))

	p, err := c.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "TV", p.Name())

	_, err = c.GetByID(99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetAllIsACopy(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 1, domain.Perishable, 1))

	all := c.GetAll()
	all[0] = nil
	_ = append(all, apparel(t, "x", 1))

	p, err := c.GetByID(1)
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, 1, c.Len())
}

func TestUpdateReplacesVariant(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 1, domain.Perishable, 1))
	c.Add(food(t, "b", 2, domain.Perishable, 1))

	replacement := apparel(t, "b2", 7)
	domain.AssignID(replacement, 2)
	require.NoError(t, c.Update(replacement))

	p, err := c.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, domain.KindApparel, p.Kind())
	assert.Equal(t, []int{1, 2}, ids(c.GetAll()))

	missing := apparel(t, "z", 1)
	domain.AssignID(missing, 42)
	before := c.GetAll()
	assert.ErrorIs(t, c.Update(missing), domain.ErrProductNotFound)

	after := c.GetAll()
	assert.Equal(t, ids(before), ids(after))
	for i := range before {
		assert.Equal(t, before[i].Kind(), after[i].Kind())
		assert.Equal(t, before[i].Price().String(), after[i].Price().String())
	}
	assert.Equal(t, []string{"1.0", "7.0"}, []string{after[0].Price().String(), after[1].Price().String()})
	assert.Equal(t, []domain.Kind{domain.KindFood, domain.KindApparel}, []domain.Kind{after[0].Kind(), after[1].Kind()})
	_, err = c.GetByID(42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStoredProductsDoNotExposeIDSetter(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 1, domain.Perishable, 1))

	p, err := c.GetByID(1)
	require.NoError(t, err)
	_, settable := p.(interface{ SetID(int) })
	assert.False(t, settable, "callers must not be able to re-key a stored product")

	for _, item := range c.GetAll() {
		_, settable := item.(interface{ SetID(int) })
		assert.False(t, settable)
	}
	got, err := c.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID())
}

func TestDelete(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 1, domain.Perishable, 1))
	c.Add(food(t, "b", 1, domain.Perishable, 1))
	c.Add(food(t, "c", 1, domain.Perishable, 1))

	require.NoError(t, c.Delete(2))
	assert.Equal(t, []int{1, 3}, ids(c.GetAll()))
	assert.ErrorIs(t, c.Delete(2), domain.ErrProductNotFound)
}

func TestSortByIsStable(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "pera", 5, domain.Perishable, 1))
	c.Add(electronics(t, "abaco", 9))
	c.Add(apparel(t, "pera", 1))
	c.Add(food(t, "mango", 5, domain.Perishable, 1))

	c.SortBy(domain.ByName)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(c.GetAll()))

	c.SortBy(domain.ByPrice)
	assert.Equal(t, []int{3, 4, 1, 2}, ids(c.GetAll()), "equal prices keep the previous relative order")

	c.SortBy(domain.ByID)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(c.GetAll()))
}

func TestFilterAndForEach(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "a", 5, domain.Perishable, 1))
	c.Add(electronics(t, "b", 50))
	c.Add(food(t, "c", 20, domain.Perishable, 1))

	cheap := c.Filter(domain.PriceBelow(domain.NewMoney(30, 0)))
	assert.Equal(t, []int{1, 3}, ids(cheap))
	assert.Empty(t, c.Filter(domain.OfKind(domain.KindApparel)))
	assert.Equal(t, 3, c.Len(), "filter leaves the catalog untouched")

	var visited []int
	c.ForEach(func(p domain.Product) { visited = append(visited, p.ID()) })
	assert.Equal(t, []int{1, 2, 3}, visited)
}

func TestFilterByVariant(t *testing.T) {
	items := []domain.Product{
		food(t, "a", 1, domain.Perishable, 1),
		electronics(t, "b", 1),
		food(t, "c", 1, domain.NonPerishable, 1),
	}

	foods := FilterByVariant[*domain.Food](items)
	require.Len(t, foods, 2)
	assert.Equal(t, "c", foods[1].Name())

	assert.Empty(t, FilterByVariant[*domain.Apparel](items))
	assert.Len(t, FilterByKind(items, domain.KindElectronics), 1)
}

func TestApplyDiscountToFood(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "Arroz", 10, domain.Perishable, 200))
	c.Add(electronics(t, "TV", 500))
	c.Add(food(t, "Pan", 3, domain.NonPerishable, 100))

	n := c.ApplyDiscountToFood(c.GetAll(), 100)
	assert.Equal(t, 2, n)

	rice, _ := c.GetByID(1)
	tv, _ := c.GetByID(2)
	bread, _ := c.GetByID(3)
	assert.Equal(t, "0.0", rice.Price().String())
	assert.Equal(t, "0.0", bread.Price().String())
	assert.Equal(t, "500.0", tv.Price().String(), "non-food items are untouched")
}

func TestApplyDiscountToFoodNonFinite(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "Arroz", 10, domain.Perishable, 200))
	c.Add(food(t, "Pan", 3, domain.NonPerishable, 100))

	assert.NotPanics(t, func() {
		assert.Equal(t, 2, c.ApplyDiscountToFood(c.GetAll(), math.NaN()))
	})
	assert.Equal(t, []string{"10.0", "3.0"}, prices(c.GetAll()))

	assert.NotPanics(t, func() {
		c.ApplyDiscountToFood(c.GetAll(), math.Inf(-1))
	})
	assert.Equal(t, []string{"10.0", "3.0"}, prices(c.GetAll()))

	assert.NotPanics(t, func() {
		c.ApplyDiscountToFood(c.GetAll(), math.Inf(1))
	})
	assert.Equal(t, []string{"0.0", "0.0"}, prices(c.GetAll()))
}

func prices(items []domain.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Price().String()
	}
	return out
}

func TestReplace(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "old", 1, domain.Perishable, 1))

	a := apparel(t, "a", 1)
	domain.AssignID(a, 7)
	b := electronics(t, "b", 1)
	domain.AssignID(b, 3)

	require.NoError(t, c.Replace([]domain.Product{a, b}))
	assert.Equal(t, []int{7, 3}, ids(c.GetAll()))
	assert.Equal(t, 8, c.NextID())

	_, err := c.GetByID(1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 8, c.Add(food(t, "new", 1, domain.Perishable, 1)))
}

func TestReplaceKeepsCounterAboveLoadedIDs(t *testing.T) {
	c := newTestCatalog()
	for range 5 {
		c.Add(food(t, "x", 1, domain.Perishable, 1))
	}

	low := apparel(t, "low", 1)
	domain.AssignID(low, 2)
	require.NoError(t, c.Replace([]domain.Product{low}))
	assert.Equal(t, 6, c.NextID())

	require.NoError(t, c.Replace(nil))
	assert.Zero(t, c.Len())
	assert.Equal(t, 6, c.NextID())
}

func TestReplaceRejectsDuplicates(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "keep", 1, domain.Perishable, 1))

	a := apparel(t, "a", 1)
	domain.AssignID(a, 4)
	b := electronics(t, "b", 1)
	domain.AssignID(b, 4)

	err := c.Replace([]domain.Product{a, b})
	require.ErrorIs(t, err, domain.ErrDuplicateProduct)
	assert.Equal(t, []int{1}, ids(c.GetAll()))
	assert.Equal(t, 2, c.NextID())
}

func TestDomainEvents(t *testing.T) {
	c := newTestCatalog()
	c.Add(food(t, "Arroz", 10, domain.Perishable, 200))
	c.SortBy(domain.ByName)
	require.NoError(t, c.Delete(1))

	events := c.DomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "product.added", events[0].EventType())
	assert.Equal(t, "1", events[0].AggregateID())
	assert.Equal(t, epoch, events[0].OccurredAt())
	assert.Equal(t, "catalog.sorted", events[1].EventType())
	assert.Equal(t, domain.CatalogAggregateID, events[1].AggregateID())
	assert.Equal(t, "product.deleted", events[2].EventType())
	assert.Equal(t, epoch.Add(2*time.Second), events[2].OccurredAt())

	c.ClearEvents()
	assert.Empty(t, c.DomainEvents())
}
