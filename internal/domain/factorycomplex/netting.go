package factorycomplex

import (
	"sort"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
)

// NetGood is the per-hour balance of one good across a complex
type NetGood struct {
	good     *catalog.Good
	produced float64
	consumed float64
	price    int
}

func (n NetGood) Good() *catalog.Good { return n.good }
func (n NetGood) Produced() float64 { return n.produced }
func (n NetGood) Consumed() float64 { return n.consumed }

// Price returns the effective unit price
func (n NetGood) Price() int { return n.price }

// Deficit returns consumed minus produced; zero or less means satisfied
func (n NetGood) Deficit() float64 { return n.consumed - n.produced }

func (n NetGood) Satisfied() bool { return n.Deficit() <= 0 }

// Profit returns the per-hour value of the surplus (negative for a deficit)
func (n NetGood) Profit() float64 {
	return (n.produced - n.consumed) * float64(n.price)
}

// Net aggregates production and consumption of the enabled instances, one
// entry per referenced good, ordered by good id
func Net(instances []*Instance, band environment.Band, price func(*catalog.Good) int) []NetGood {
	byGood := make(map[*catalog.Good]*NetGood)
	entry := func(g *catalog.Good) *NetGood {
		if n, ok := byGood[g]; ok {
			return n
		}
		n := &NetGood{good: g}
		byGood[g] = n
		return n
	}

	for _, inst := range instances {
		if inst.disabled {
			continue
		}
		out := entry(inst.building.Product().Good)
		out.produced += inst.Output(band)
		for _, in := range inst.Inputs(band) {
			entry(in.Good).consumed += in.Rate
		}
	}

	result := make([]NetGood, 0, len(byGood))
	for g, n := range byGood {
		n.price = price(g)
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].good.ID() < result[j].good.ID() })
	return result
}
