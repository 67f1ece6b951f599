package export_report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
	"github.com/murkotick/product-catalog-manager/internal/app/product/repo"
	"github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

func TestExportReport(t *testing.T) {
	catalog := repo.NewCatalog(nil)
	rice, err := domain.NewFood(0, "Arroz", domain.NewMoney(10, 0), domain.Perishable, 200)
	require.NoError(t, err)
	tv, err := domain.NewElectronics(0, "TV", domain.NewMoney(300, 0), domain.BrandSony, 24)
	require.NoError(t, err)
	bread, err := domain.NewFood(0, "Pan", domain.NewMoney(2, 0), domain.NonPerishable, 100)
	require.NoError(t, err)
	catalog.Add(rice)
	catalog.Add(tv)
	catalog.Add(bread)

	path := filepath.Join(t.TempDir(), "reporte.txt")
	uc := NewInteractor(catalog, committer.NewAdapter(nil), zap.NewNop())

	n, err := uc.Execute(context.Background(), Request{
		Path:   path,
		Filter: dto.ListFilter{MaxPrice: "50", SortBy: "price"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Reporte de Productos Filtrados\n"+
		"-----------------------------\n"+
		"Alimento: Alimento Pan (NO_PERECEDERO), 100 calorías. - Precio: 2.0\n"+
		"Alimento: Alimento Arroz (PERECEDERO), 200 calorías. - Precio: 10.0\n", string(data))

	assert.Equal(t, []int{1, 2, 3}, []int{catalog.GetAll()[0].ID(), catalog.GetAll()[1].ID(), catalog.GetAll()[2].ID()},
		"exporting does not reorder the catalog")
}

func TestExportReportBadFilter(t *testing.T) {
	uc := NewInteractor(repo.NewCatalog(nil), committer.NewAdapter(nil), zap.NewNop())
	_, err := uc.Execute(context.Background(), Request{Path: filepath.Join(t.TempDir(), "r.txt"), Filter: dto.ListFilter{Kind: "Mueble"}})
	assert.ErrorIs(t, err, domain.ErrUnknownType)
}
