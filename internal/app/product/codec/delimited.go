package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

const maxDelimitedLine = 1 << 20

// Delimited is the comma-separated interchange format: one "id,name,price,tag"
// line per product, no header, no quoting.
//
// The format is lossy. Only id, name, price and tag are written; decoding
// rebuilds each variant with its default payload. Names are not escaped, so a
// name containing a comma produces a line that fails to decode.
type Delimited struct{}

func (Delimited) Encode(w io.Writer, items []domain.Product) error {
	bw := bufio.NewWriter(w)
	for _, p := range items {
		if _, err := fmt.Fprintf(bw, "%d,%s,%s,%s\n", p.ID(), p.Name(), p.Price(), p.Kind()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (Delimited) Decode(r io.Reader) ([]domain.Product, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxDelimitedLine)

	out := make([]domain.Product, 0)
	line := 0
	for sc.Scan() {
		line++
		p, err := decodeDelimitedLine(sc.Text())
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", line)
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(domain.ErrFormat, "line %d exceeds %d bytes", line+1, maxDelimitedLine)
		}
		return nil, err
	}
	return out, nil
}

// decodeDelimitedLine parses id, then price, then resolves the tag.
// Fields after the fourth are ignored.
func decodeDelimitedLine(text string) (domain.Product, error) {
	parts := strings.Split(text, ",")
	if len(parts) < 4 {
		return nil, errors.Wrapf(domain.ErrFormat, "want 4 fields, got %d", len(parts))
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrFormat, "id %q", parts[0])
	}
	price, err := domain.NewMoneyFromDecimal(parts[2])
	if err != nil {
		return nil, err
	}

	build, ok := delimitedBuilders[domain.Kind(parts[3])]
	if !ok {
		return nil, errors.Wrapf(domain.ErrUnknownType, "%q", parts[3])
	}
	return build(id, parts[1], price)
}
