package search

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestCatalog builds a catalog with perCategory components in every
// category. CPUs and motherboards alternate between two sockets so that
// roughly half of all CPU/Motherboard pairs are compatible.
func newTestCatalog(t *testing.T, perCategory int) *Catalog {
	t.Helper()
	var comps []Component
	id := int64(1)
	for _, c := range Categories() {
		for i := 0; i < perCategory; i++ {
			comp := Component{
				ID:          id,
				Category:    c,
				Name:        fmt.Sprintf("%s #%d", c, i),
				Price:       float64(100_000 + 50_000*i + 10_000*int(c)),
				Performance: float64(10 + 7*i + int(c)),
			}
			if c == CategoryCPU || c == CategoryMotherboard {
				comp.Socket = []string{"AM5", "LGA1700"}[i%2]
			}
			comps = append(comps, comp)
			id++
		}
	}
	cat, err := NewCatalog(comps)
	require.NoError(t, err)
	return cat
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func cpu(socket string, price, perf float64) Component {
	return Component{ID: 1, Category: CategoryCPU, Name: "cpu-" + socket, Price: price, Performance: perf, Socket: socket}
}

func motherboard(socket string, price, perf float64) Component {
	return Component{ID: 2, Category: CategoryMotherboard, Name: "mb-" + socket, Price: price, Performance: perf, Socket: socket}
}
