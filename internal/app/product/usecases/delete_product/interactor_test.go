package delete_product

import (
	"context"
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

func TestDeleteProduct(t *testing.T) {
	catalog := repo.NewCatalog(nil)
	a, err := domain.NewApparel(0, "Polo", domain.NewMoney(5, 0), domain.SizeS, "Lana")
	require.NoError(t, err)
	catalog.Add(a)
	catalog.ClearEvents()

	j := journal.New()
	uc := NewInteractor(catalog, j, committer.NewAdapter(nil), clock.RealClock{}, zap.NewNop())

	require.NoError(t, uc.Execute(context.Background(), Request{ProductID: 1}))
	assert.Zero(t, catalog.Len())
	require.Equal(t, 1, j.Len())
	assert.Equal(t, "product.deleted", j.Entries()[0].EventType)

	err = uc.Execute(context.Background(), Request{ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 1, j.Len())
}
