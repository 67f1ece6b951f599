package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

const (
	ReportTitle     = "Reporte de Productos Filtrados"
	ReportSeparator = "-----------------------------"
)

// Report writes a human-readable listing. It has no decoder.
//
//	Reporte de Productos Filtrados
//	-----------------------------
//	Alimento: Alimento Arroz (PERECEDERO), 200 calorías. - Precio: 10.0
type Report struct{}

func (Report) Encode(w io.Writer, items []domain.Product) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ReportTitle)
	fmt.Fprintln(bw, ReportSeparator)
	for _, p := range items {
		fmt.Fprintf(bw, "%s: %s - Precio: %s\n", p.Kind(), p.Description(), p.Price())
	}
	return bw.Flush()
}
