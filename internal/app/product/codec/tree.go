package codec

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tree is the lossless JSON format: an array of {"tipo": tag, "datos": {...}}
// records, where datos holds the common fields and the variant payload.
//
// Text fields must be valid UTF-8 to survive a round trip: invalid bytes in a
// name or material are written as U+FFFD. Binary keeps the raw bytes.
type Tree struct{}

type treeRecord struct {
	Tipo  string              `json:"tipo"`
	Datos jsoniter.RawMessage `json:"datos"`
}

// treeOut is the encoding side of treeRecord. Datos holds the variant struct
// itself so indentation reaches the nested object.
type treeOut struct {
	Tipo  string `json:"tipo"`
	Datos any    `json:"datos"`
}

type productData struct {
	ID     int             `json:"id"`
	Nombre string          `json:"nombre"`
	Precio jsoniter.Number `json:"precio"`
}

type foodData struct {
	productData
	Tipo     string `json:"tipo"`
	Calorias int    `json:"calorias"`
}

type electronicsData struct {
	productData
	Marca         string `json:"marca"`
	GarantiaMeses int    `json:"garantiaMeses"`
}

type apparelData struct {
	productData
	Talla    string `json:"talla"`
	Material string `json:"material"`
}

type treeVariant struct {
	encode func(p domain.Product) (any, error)
	decode func(raw []byte) (domain.Product, error)
}

var treeVariants = map[domain.Kind]treeVariant{
	domain.KindFood: {
		encode: func(p domain.Product) (any, error) {
			f, ok := p.(*domain.Food)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			return foodData{productData: commonData(p), Tipo: string(f.Class()), Calorias: f.Calories()}, nil
		},
		decode: func(raw []byte) (domain.Product, error) {
			var d foodData
			if err := unmarshalDatos(raw, &d); err != nil {
				return nil, err
			}
			price, err := d.price()
			if err != nil {
				return nil, err
			}
			class, err := domain.ParseFoodClass(d.Tipo)
			if err != nil {
				return nil, errors.Wrap(domain.ErrFormat, err.Error())
			}
			return domain.NewFood(d.ID, d.Nombre, price, class, d.Calorias)
		},
	},
	domain.KindElectronics: {
		encode: func(p domain.Product) (any, error) {
			e, ok := p.(*domain.Electronics)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			return electronicsData{productData: commonData(p), Marca: string(e.Brand()), GarantiaMeses: e.WarrantyMonths()}, nil
		},
		decode: func(raw []byte) (domain.Product, error) {
			var d electronicsData
			if err := unmarshalDatos(raw, &d); err != nil {
				return nil, err
			}
			price, err := d.price()
			if err != nil {
				return nil, err
			}
			brand, err := domain.ParseBrand(d.Marca)
			if err != nil {
				return nil, errors.Wrap(domain.ErrFormat, err.Error())
			}
			return domain.NewElectronics(d.ID, d.Nombre, price, brand, d.GarantiaMeses)
		},
	},
	domain.KindApparel: {
		encode: func(p domain.Product) (any, error) {
			a, ok := p.(*domain.Apparel)
			if !ok {
				return nil, errors.Wrapf(domain.ErrUnknownType, "%T tagged %s", p, p.Kind())
			}
			return apparelData{productData: commonData(p), Talla: string(a.Size()), Material: a.Material()}, nil
		},
		decode: func(raw []byte) (domain.Product, error) {
			var d apparelData
			if err := unmarshalDatos(raw, &d); err != nil {
				return nil, err
			}
			price, err := d.price()
			if err != nil {
				return nil, err
			}
			size, err := domain.ParseSize(d.Talla)
			if err != nil {
				return nil, errors.Wrap(domain.ErrFormat, err.Error())
			}
			return domain.NewApparel(d.ID, d.Nombre, price, size, d.Material)
		},
	},
}

func commonData(p domain.Product) productData {
	return productData{ID: p.ID(), Nombre: p.Name(), Precio: jsoniter.Number(p.Price().String())}
}

// price treats a missing value as zero.
func (d productData) price() (domain.Money, error) {
	if d.Precio == "" {
		return domain.Zero(), nil
	}
	return domain.NewMoneyFromDecimal(string(d.Precio))
}

func unmarshalDatos(raw []byte, v any) error {
	if len(raw) == 0 {
		return errors.Wrap(domain.ErrFormat, "missing datos")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(domain.ErrFormat, "datos: %v", err)
	}
	return nil
}

func (Tree) Encode(w io.Writer, items []domain.Product) error {
	records := make([]treeOut, 0, len(items))
	for _, p := range items {
		v, ok := treeVariants[p.Kind()]
		if !ok {
			return errors.Wrapf(domain.ErrUnknownType, "%q", p.Kind())
		}
		datos, err := v.encode(p)
		if err != nil {
			return err
		}
		records = append(records, treeOut{Tipo: string(p.Kind()), Datos: datos})
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func (Tree) Decode(r io.Reader) ([]domain.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []treeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(domain.ErrFormat, "catalog document: %v", err)
	}

	out := make([]domain.Product, 0, len(records))
	for i, rec := range records {
		v, ok := treeVariants[domain.Kind(rec.Tipo)]
		if !ok {
			return nil, errors.Wrapf(domain.ErrUnknownType, "record %d: tag %q", i, rec.Tipo)
		}
		p, err := v.decode(rec.Datos)
		if err != nil {
			return nil, errors.WithMessagef(err, "record %d", i)
		}
		out = append(out, p)
	}
	return out, nil
}
