package codec

import (
	"fmt"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// Each format keeps a registry from variant tag to the function that rebuilds
// that variant. The registries are checked against domain.Kinds at start-up so
// adding a variant without teaching every format about it fails immediately.

type defaultBuilder func(id int, name string, price domain.Money) (domain.Product, error)

var delimitedBuilders = map[domain.Kind]defaultBuilder{
	domain.KindFood:        defaultsOf(domain.KindFood),
	domain.KindElectronics: defaultsOf(domain.KindElectronics),
	domain.KindApparel:     defaultsOf(domain.KindApparel),
}

func defaultsOf(kind domain.Kind) defaultBuilder {
	return func(id int, name string, price domain.Money) (domain.Product, error) {
		return domain.NewDefault(kind, id, name, price)
	}
}

func init() {
	mustCoverKinds("delimited", keysOf(delimitedBuilders))
	mustCoverKinds("tree", keysOf(treeVariants))

	kinds := make([]domain.Kind, 0, len(binaryComponents))
	for num, c := range binaryComponents {
		if prev, dup := binaryNumbers[c.kind]; dup {
			panic(fmt.Sprintf("codec: binary component %s registered as %d and %d", c.kind, prev, num))
		}
		binaryNumbers[c.kind] = num
		kinds = append(kinds, c.kind)
	}
	mustCoverKinds("binary", kinds)
}

func keysOf[V any](m map[domain.Kind]V) []domain.Kind {
	out := make([]domain.Kind, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func mustCoverKinds(format string, registered []domain.Kind) {
	seen := make(map[domain.Kind]bool, len(registered))
	for _, k := range registered {
		seen[k] = true
	}
	for _, k := range domain.Kinds() {
		if !seen[k] {
			panic(fmt.Sprintf("codec: %s format has no entry for variant %s", format, k))
		}
	}
	if len(seen) != len(domain.Kinds()) {
		panic(fmt.Sprintf("codec: %s format registers unknown variants", format))
	}
}
