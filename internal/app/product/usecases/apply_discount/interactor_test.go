package apply_discount

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/journal"
	"github.com/murkotick/product-catalog-manager/internal/app/product/repo"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	"github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

func seeded(t *testing.T) *repo.Catalog {
	t.Helper()
	catalog := repo.NewCatalog(nil)
	rice, err := domain.NewFood(0, "Arroz", domain.NewMoney(10, 0), domain.Perishable, 200)
	require.NoError(t, err)
	tv, err := domain.NewElectronics(0, "TV", domain.NewMoney(300, 0), domain.BrandSony, 24)
	require.NoError(t, err)
	catalog.Add(rice)
	catalog.Add(tv)
	catalog.ClearEvents()
	return catalog
}

func TestApplyDiscountToFoodOnly(t *testing.T) {
	catalog := seeded(t)
	j := journal.New()
	uc := NewInteractor(catalog, j, committer.NewAdapter(nil), clock.RealClock{}, zap.NewNop())

	n, err := uc.Execute(context.Background(), Request{Percentage: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rice, _ := catalog.GetByID(1)
	tv, _ := catalog.GetByID(2)
	assert.Equal(t, "8.0", rice.Price().String())
	assert.Equal(t, "300.0", tv.Price().String())

	require.Equal(t, 1, j.Len())
	assert.Contains(t, j.Entries()[0].PayloadJSON, `"product_ids":[1]`)
}

func TestApplyFullDiscountClampsToZero(t *testing.T) {
	catalog := seeded(t)
	uc := NewInteractor(catalog, journal.New(), committer.NewAdapter(nil), clock.RealClock{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), Request{Percentage: 100})
	require.NoError(t, err)

	rice, _ := catalog.GetByID(1)
	assert.True(t, rice.Price().IsZero())
}

func TestApplyDiscountRejectsInvalidPercentage(t *testing.T) {
	for _, pct := range []float64{-1, math.NaN(), math.Inf(1)} {
		catalog := seeded(t)
		uc := NewInteractor(catalog, journal.New(), committer.NewAdapter(nil), clock.RealClock{}, zap.NewNop())

		_, err := uc.Execute(context.Background(), Request{Percentage: pct})
		require.ErrorIs(t, err, ErrInvalidPercentage)

		rice, _ := catalog.GetByID(1)
		assert.Equal(t, "10.0", rice.Price().String())
	}
}
