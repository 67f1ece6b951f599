package codec

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// binaryMagic opens every binary catalog.
const binaryMagic = "PCAT"

// Record field numbers inside a component.
const (
	fieldID      protowire.Number = 1
	fieldName    protowire.Number = 2
	fieldPrice   protowire.Number = 3
	fieldEnum    protowire.Number = 4
	fieldPayload protowire.Number = 5
)

// Binary is the compact lossless format. After the magic, each product is one
// length-delimited field whose number identifies the variant:
//
//	1 Food        {1 id, 2 name, 3 price, 4 class ordinal, 5 calories}
//	2 Electronics {1 id, 2 name, 3 price, 4 brand ordinal, 5 warranty months}
//	3 Apparel     {1 id, 2 name, 3 price, 4 size ordinal, 5 material}
//
// Integers are zigzag varints. Prices are stored as decimal text so they
// round-trip exactly.
type Binary struct{}

type binaryComponent struct {
	kind          domain.Kind
	appendPayload func(b []byte, p domain.Product) ([]byte, error)
	build         func(r *binaryRecord) (domain.Product, error)
}

var binaryComponents = map[protowire.Number]binaryComponent{
	1: {
		kind: domain.KindFood,
		appendPayload: func(b []byte, p domain.Product) ([]byte, error) {
			f, ok := p.(*domain.Food)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			b = appendOrdinal(b, domain.Ordinal(domain.FoodClasses(), f.Class()))
			return appendInt(b, fieldPayload, f.Calories()), nil
		},
		build: func(r *binaryRecord) (domain.Product, error) {
			class, err := ordinalOf(domain.FoodClasses(), r.ordinal, "food class")
			if err != nil {
				return nil, err
			}
			return domain.NewFood(r.id, r.name, r.price, class, r.number)
		},
	},
	2: {
		kind: domain.KindElectronics,
		appendPayload: func(b []byte, p domain.Product) ([]byte, error) {
			e, ok := p.(*domain.Electronics)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			b = appendOrdinal(b, domain.Ordinal(domain.Brands(), e.Brand()))
			return appendInt(b, fieldPayload, e.WarrantyMonths()), nil
		},
		build: func(r *binaryRecord) (domain.Product, error) {
			brand, err := ordinalOf(domain.Brands(), r.ordinal, "brand")
			if err != nil {
				return nil, err
			}
			return domain.NewElectronics(r.id, r.name, r.price, brand, r.number)
		},
	},
	3: {
		kind: domain.KindApparel,
		appendPayload: func(b []byte, p domain.Product) ([]byte, error) {
			a, ok := p.(*domain.Apparel)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			b = appendOrdinal(b, domain.Ordinal(domain.Sizes(), a.Size()))
			b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
			return protowire.AppendString(b, a.Material()), nil
		},
		build: func(r *binaryRecord) (domain.Product, error) {
			size, err := ordinalOf(domain.Sizes(), r.ordinal, "size")
			if err != nil {
				return nil, err
			}
			return domain.NewApparel(r.id, r.name, r.price, size, r.text)
		},
	},
}

// binaryNumbers is the inverse of binaryComponents, filled at init.
var binaryNumbers = map[domain.Kind]protowire.Number{}

func (Binary) Encode(w io.Writer, items []domain.Product) error {
	buf := []byte(binaryMagic)
	var rec []byte
	for _, p := range items {
		num, ok := binaryNumbers[p.Kind()]
		if !ok {
			return errors.Wrapf(domain.ErrUnknownType, "%q", p.Kind())
		}

		rec = appendInt(rec[:0], fieldID, p.ID())
		rec = protowire.AppendTag(rec, fieldName, protowire.BytesType)
		rec = protowire.AppendString(rec, p.Name())
		rec = protowire.AppendTag(rec, fieldPrice, protowire.BytesType)
		rec = protowire.AppendString(rec, p.Price().String())

		var err error
		if rec, err = binaryComponents[num].appendPayload(rec, p); err != nil {
			return err
		}

		buf = protowire.AppendTag(buf, num, protowire.BytesType)
		buf = protowire.AppendBytes(buf, rec)
	}
	_, err := w.Write(buf)
	return err
}

func (Binary) Decode(r io.Reader) ([]domain.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte(binaryMagic)) {
		return nil, errors.Wrap(domain.ErrCorruptData, "missing catalog header")
	}
	data = data[len(binaryMagic):]

	out := make([]domain.Product, 0)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, corrupt(len(out), protowire.ParseError(n))
		}
		data = data[n:]

		comp, ok := binaryComponents[num]
		if !ok || typ != protowire.BytesType {
			return nil, errors.Wrapf(domain.ErrCorruptData, "record %d: unknown component %d", len(out), num)
		}
		body, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, corrupt(len(out), protowire.ParseError(n))
		}
		data = data[n:]

		rec, err := parseBinaryRecord(body)
		if err != nil {
			return nil, corrupt(len(out), err)
		}
		p, err := comp.build(rec)
		if err != nil {
			return nil, corrupt(len(out), err)
		}
		out = append(out, p)
	}
	return out, nil
}

// binaryRecord holds the decoded fields of one component. number is the
// integer payload of Food and Electronics, text the string payload of Apparel.
type binaryRecord struct {
	id      int
	name    string
	price   domain.Money
	ordinal uint64
	number  int
	text    string
}

func parseBinaryRecord(b []byte) (*binaryRecord, error) {
	r := &binaryRecord{}
	hasPrice := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.id = int(protowire.DecodeZigZag(v))
			b = b[n:]
		case num == fieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.name = v
			b = b[n:]
		case num == fieldPrice && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			price, err := domain.NewMoneyFromDecimal(v)
			if err != nil {
				return nil, err
			}
			r.price, hasPrice = price, true
			b = b[n:]
		case num == fieldEnum && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.ordinal = v
			b = b[n:]
		case num == fieldPayload && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.number = int(protowire.DecodeZigZag(v))
			b = b[n:]
		case num == fieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.text = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if !hasPrice {
		return nil, errors.New("missing price")
	}
	return r, nil
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendOrdinal(b []byte, ordinal int) []byte {
	b = protowire.AppendTag(b, fieldEnum, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(ordinal))
}

func ordinalOf[T ~string](members []T, ordinal uint64, what string) (T, error) {
	if ordinal >= uint64(len(members)) {
		var zero T
		return zero, errors.Errorf("%s ordinal %d out of range", what, ordinal)
	}
	return members[ordinal], nil
}

// corrupt folds any failure while reading a record into ErrCorruptData.
func corrupt(record int, cause error) error {
	return errors.Wrapf(domain.ErrCorruptData, "record %d: %v", record, cause)
}
