package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/journal"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/get_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_history"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	"github.com/murkotick/product-catalog-manager/internal/app/product/repo"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/apply_discount"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/delete_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/export_report"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/load_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/save_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/sort_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	"github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// newHandler wires a fresh process the way cmd/catalog does.
func newHandler(t *testing.T) *Handler {
	t.Helper()
	return newHandlerWithJournal(t, journal.New())
}

func newHandlerWithJournal(t *testing.T, events *journal.Journal) *Handler {
	t.Helper()
	clk := clock.NewStepper(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)
	catalog := repo.NewCatalog(clk)
	cm := committer.NewAdapter(nil)
	log := zap.NewNop()
	rm := queries.NewCatalogReadModel(catalog)

	return NewHandler(Commands{
		Create:   create_product.NewInteractor(catalog, events, cm, clk, log),
		Update:   update_product.NewInteractor(catalog, events, cm, clk, log),
		Delete:   delete_product.NewInteractor(catalog, events, cm, clk, log),
		Discount: apply_discount.NewInteractor(catalog, events, cm, clk, log),
		Sort:     sort_catalog.NewInteractor(catalog, events, cm, clk, log),
		Load:     load_catalog.NewInteractor(catalog, events, cm, clk, log),
		Save:     save_catalog.NewInteractor(catalog, cm, log),
		Report:   export_report.NewInteractor(catalog, cm, log),
	}, Queries{
		Get:     get_product.NewHandler(rm),
		List:    list_products.NewHandler(rm),
		History: list_history.NewHandler(list_history.NewJournalHistoryQuery(events)),
	}, log, "json")
}

// runCLI executes one command line in a fresh process.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := newHandler(t).Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// runCLIWithJournal executes one command line in a fresh process that
// journals to journalPath.
func runCLIWithJournal(t *testing.T, journalPath string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := newHandlerWithJournal(t, journal.Open(journalPath)).Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func seedFile(t *testing.T, path string) {
	t.Helper()
	for _, args := range [][]string{
		{"add", "--kind", "Alimento", "--name", "Arroz", "--price", "10", "--food-class", "PERECEDERO", "--calories", "250"},
		{"add", "--kind", "Electronico", "--name", "TV", "--price", "299.99", "--brand", "SONY"},
		{"add", "--kind", "Ropa", "--name", "Camisa", "--price", "25.5", "--size", "L"},
	} {
		code, _, stderr := runCLI(t, append([]string{"--file", path}, args...)...)
		require.Equal(t, ExitOK, code, stderr)
	}
}

func TestAddCreatesMissingFileAndAssignsIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.json")

	code, out, _ := runCLI(t, "--file", path, "add", "--kind", "Alimento", "--name", "Arroz", "--price", "10")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "added product 1\n", out)

	code, out, _ = runCLI(t, "--file", path, "add", "--kind", "Ropa", "--name", "Camisa", "--price", "20")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "added product 2\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tipo": "Alimento"`)
	assert.Contains(t, string(data), `"tipo": "Ropa"`)
}

func TestListFiltersAndSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.bin")
	seedFile(t, path)

	code, out, _ := runCLI(t, "--file", path, "list", "--sort", "price")
	require.Equal(t, ExitOK, code)
	assert.Regexp(t, `(?s)ID.*Arroz.*Camisa.*TV`, out)

	code, out, _ = runCLI(t, "--file", path, "list", "--max-price", "100")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Arroz")
	assert.Contains(t, out, "Camisa")
	assert.NotContains(t, out, "TV")

	code, out, _ = runCLI(t, "--file", path, "list", "--kind", "Electronico")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "TV")
	assert.NotContains(t, out, "Arroz")
}

func TestListPrintsTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.json")
	seedFile(t, path)

	code, out, _ := runCLI(t, "--file", path, "list")
	require.Equal(t, ExitOK, code)
	assert.Regexp(t, `TOTAL\s+3 products\s+335\.49\s+333\.99\n$`, out)

	code, out, _ = runCLI(t, "--file", path, "list", "--kind", "Ropa")
	require.Equal(t, ExitOK, code)
	assert.Regexp(t, `TOTAL\s+1 products\s+25\.5\s+25\.5\n$`, out)
}

func TestHistorySpansProcesses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "productos.json")
	journalPath := filepath.Join(dir, "journal.jsonl")

	code, _, stderr := runCLIWithJournal(t, journalPath, "--file", path, "add", "--kind", "Ropa", "--name", "Camisa", "--price", "20")
	require.Equal(t, ExitOK, code, stderr)
	code, _, stderr = runCLIWithJournal(t, journalPath, "--file", path, "delete", "--id", "1")
	require.Equal(t, ExitOK, code, stderr)

	code, out, stderr := runCLIWithJournal(t, journalPath, "history")
	require.Equal(t, ExitOK, code, stderr)
	assert.Regexp(t, `(?s)RECORDED.*product\.added.*product\.deleted`, out)

	code, out, _ = runCLIWithJournal(t, journalPath, "history", "--limit", "1")
	require.Equal(t, ExitOK, code)
	assert.NotContains(t, out, "product.added")
	assert.Contains(t, out, "product.deleted")
}

func TestHistoryCorruptJournal(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(journalPath, []byte("{not json}\n"), 0o600))

	code, _, stderr := runCLIWithJournal(t, journalPath, "history")
	assert.Equal(t, ExitData, code)
	assert.Contains(t, stderr, "journal line 1")
}

func TestShowPrintsVariantAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.json")
	seedFile(t, path)

	code, out, _ := runCLI(t, "--file", path, "show", "--id", "1")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "description: Alimento Arroz (PERECEDERO), 250 calorías.")
	assert.Contains(t, out, "discount:    1.5")
	assert.Contains(t, out, "effective:   8.5")
	assert.Contains(t, out, "attributes:  class=PERECEDERO calories=250")

	code, out, _ = runCLI(t, "--file", path, "show", "--id", "2")
	require.Equal(t, ExitOK, code)
	assert.NotContains(t, out, "discount:")
	assert.Contains(t, out, "brand=SONY warranty=12")
}

func TestUpdateAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.json")
	seedFile(t, path)

	code, _, stderr := runCLI(t, "--file", path, "update", "--id", "3", "--kind", "Alimento", "--calories", "0")
	require.Equal(t, ExitOK, code, stderr)

	_, out, _ := runCLI(t, "--file", path, "show", "--id", "3")
	assert.Contains(t, out, "Alimento Camisa (NO_PERECEDERO), 0 calorías.")
	assert.Contains(t, out, "price:       25.5")

	code, out, _ = runCLI(t, "--file", path, "delete", "--id", "2")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "deleted product 2\n", out)

	code, _, stderr = runCLI(t, "--file", path, "show", "--id", "2")
	assert.Equal(t, ExitNotFound, code)
	assert.Contains(t, stderr, "product not found")
}

func TestDiscountFoodAndSortPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.csv")
	seedFile(t, path)

	code, out, _ := runCLI(t, "--file", path, "discount-food", "--pct", "10")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "repriced 1 food products\n", out)

	code, _, _ = runCLI(t, "--file", path, "sort", "--by", "name")
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,Arroz,9.0,Alimento\n3,Camisa,25.5,Ropa\n2,TV,299.99,Electronico\n", string(data))
}

func TestConvertAndReport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "productos.json")
	seedFile(t, src)

	dst := filepath.Join(dir, "copia.dat")
	code, out, _ := runCLI(t, "--file", src, "convert", "--to", dst)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "wrote "+dst+" (bin)\n", out)

	code, out, _ = runCLI(t, "--file", dst, "show", "--id", "1")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "calories=250")

	report := filepath.Join(dir, "reporte.txt")
	code, out, _ = runCLI(t, "--file", src, "report", "--out", report, "--kind", "Ropa")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "reported 1 products to "+report+"\n", out)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ropa: Camisa - Talla: L - Material: Algodón")
	assert.NotContains(t, string(data), "Arroz")
}

func TestFileWithoutExtensionUsesDefaultFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo")

	code, _, _ := runCLI(t, "--file", path, "add", "--kind", "Ropa", "--name", "Gorra", "--price", "5")
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nombre": "Gorra"`)
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "roto.bin")
	require.NoError(t, os.WriteFile(corrupt, []byte("garbage"), 0o644))
	report := filepath.Join(dir, "reporte.txt")
	require.NoError(t, os.WriteFile(report, []byte("x"), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "negative price", args: []string{"add", "--kind", "Ropa", "--name", "x", "--price", "-1"}, want: ExitUsage},
		{name: "bad enum", args: []string{"add", "--kind", "Ropa", "--name", "x", "--price", "1", "--size", "XXL"}, want: ExitUsage},
		{name: "foreign attribute", args: []string{"add", "--kind", "Ropa", "--name", "x", "--price", "1", "--brand", "SONY"}, want: ExitUsage},
		{name: "negative discount", args: []string{"discount-food", "--pct=-5"}, want: ExitUsage},
		{name: "unknown sort key", args: []string{"sort", "--by", "color"}, want: ExitUsage},
		{name: "missing required flag", args: []string{"delete"}, want: ExitUsage},
		{name: "unknown command", args: []string{"explode"}, want: ExitUsage},
		{name: "unknown kind", args: []string{"add", "--kind", "Mueble", "--name", "x", "--price", "1"}, want: ExitData},
		{name: "not found", args: []string{"delete", "--id", "9"}, want: ExitNotFound},
		{name: "corrupt file", args: []string{"--file", corrupt, "list"}, want: ExitData},
		{name: "write-only file", args: []string{"--file", report, "list"}, want: ExitUsage},
		{name: "missing directory", args: []string{"--file", filepath.Join(dir, "nope", "p.json"), "add", "--kind", "Ropa", "--name", "x", "--price", "1"}, want: ExitIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code, stderr)
			assert.Contains(t, stderr, "error: ")
		})
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := newHandler(t).Execute(ctx, []string{"add", "--kind", "Ropa", "--name", "x", "--price", "1"}, &stdout, &stderr)
	assert.Equal(t, ExitCanceled, code)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: errors.Wrap(domain.ErrProductNotFound, "id 3"), want: ExitNotFound},
		{err: domain.ErrInvalidPrice, want: ExitUsage},
		{err: shared.ErrForeignAttribute, want: ExitUsage},
		{err: codec.ErrUnsupportedFormat, want: ExitUsage},
		{err: domain.NewIOError("open", "p.json", os.ErrPermission), want: ExitIO},
		{err: errors.WithMessage(domain.ErrCorruptData, "record 2"), want: ExitData},
		{err: domain.ErrDuplicateProduct, want: ExitData},
		{err: context.DeadlineExceeded, want: ExitCanceled},
		{err: errors.New("boom"), want: ExitFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(mapError(tt.err)), tt.err.Error())
	}

	assert.NoError(t, mapError(nil))
	assert.Equal(t, ExitOK, ExitCode(nil))

	wrapped := mapError(domain.ErrFormat)
	assert.ErrorIs(t, wrapped, domain.ErrFormat)
	assert.Same(t, wrapped, mapError(wrapped))
}
