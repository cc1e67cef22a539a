package factorycomplex

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
)

// DefaultMaxPasses bounds the greedy fill loop
const DefaultMaxPasses = 10000

const (
	// quantityEpsilon is subtracted before rounding a need to whole buildings
	quantityEpsilon = 0.1
	// changeEpsilon is the minimum need change that counts as progress
	changeEpsilon = 1e-7
)

// OptimizationStats describes one optimizer run
type OptimizationStats struct {
	Game          string
	Duration      time.Duration
	Passes        int
	FactionTrials int
	Synthesized   int
	Unresolved    int
	// WinningFaction is the faction whose pivotal-good producers beat the
	// unconstrained baseline, empty when the baseline won
	WinningFaction string
	Capped         bool
}

// optimizer synthesizes the base complex for a fixed set of user instances
type optimizer struct {
	cat       *catalog.Catalog
	band      environment.Band
	user      []*Instance
	price     func(*catalog.Good) int
	excluded  func(*catalog.Faction) bool
	maxPasses int
	logger    *zap.Logger
}

// candidate is the result of one fill run
type candidate struct {
	instances []*Instance
	price     int64
	passes    int
	capped    bool
}

// run computes the cheapest synthesized set: a baseline with no faction
// preference, then one trial per eligible faction for the pivotal good.
// A trial replaces the best result only when strictly cheaper.
func (o *optimizer) run() ([]*Instance, OptimizationStats) {
	start := time.Now()
	stats := OptimizationStats{Game: o.cat.Game().ID()}

	best := o.fill(nil)
	stats.Passes += best.passes
	stats.Capped = best.capped

	pivotal := o.cat.PivotalGood()
	for _, faction := range o.cat.Factions() {
		if o.excluded != nil && o.excluded(faction) {
			continue
		}
		if !o.cat.HasProducer(pivotal, faction) {
			continue
		}
		stats.FactionTrials++
		trial := o.tryFaction(faction)
		stats.Passes += trial.passes
		stats.Capped = stats.Capped || trial.capped
		o.logger.Debug("faction trial",
			zap.String("faction", faction.ID()),
			zap.Int64("price", trial.price),
			zap.Int64("best_price", best.price))
		if trial.price < best.price {
			best = trial
			stats.WinningFaction = faction.ID()
		}
	}

	sortInstances(best.instances)
	for _, n := range Net(o.all(best.instances), o.band, o.price) {
		if !n.good.IsMineral() && n.Deficit() > 0 {
			stats.Unresolved++
		}
	}
	stats.Synthesized = len(best.instances)
	stats.Duration = time.Since(start)
	return best.instances, stats
}

// tryFaction runs a fill constrained to one faction for the pivotal good
func (o *optimizer) tryFaction(faction *catalog.Faction) candidate {
	return o.fill(faction)
}

// fill repeatedly resolves the first unsatisfied non-mineral good until a
// full scan makes no progress
func (o *optimizer) fill(pivotalFaction *catalog.Faction) candidate {
	var auto []*Instance
	pivotal := o.cat.PivotalGood()
	passes := 0
	capped := false

	for {
		if passes >= o.maxPasses {
			o.logger.Warn("optimizer pass limit reached",
				zap.Int("passes", passes),
				zap.String("game", o.cat.Game().ID()))
			capped = true
			break
		}
		passes++

		progressed := false
		for _, net := range Net(o.all(auto), o.band, o.price) {
			if net.good.IsMineral() || net.Deficit() <= 0 {
				continue
			}
			var faction *catalog.Faction
			if net.good == pivotal {
				faction = pivotalFaction
			}
			var ok bool
			auto, ok = o.fillGood(auto, net, faction)
			if ok {
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}

	return candidate{instances: auto, price: o.totalPrice(auto), passes: passes, capped: capped}
}

// fillGood replaces the synthesized producers of one good with the set that
// covers its need, largest size first. It reports false when the need could
// not be changed.
func (o *optimizer) fillGood(auto []*Instance, net NetGood, faction *catalog.Faction) ([]*Instance, bool) {
	good := net.good
	need := net.Deficit()
	oldNeed := need

	kept := make([]*Instance, 0, len(auto))
	for _, inst := range auto {
		if inst.building.Product().Good == good {
			need += inst.Output(o.band)
			continue
		}
		kept = append(kept, inst)
	}

	sizes := o.cat.ProducerSizes(good, faction)
	if len(sizes) == 0 {
		o.logger.Debug("no producer available", zap.String("good", good.ID()))
		return kept, false
	}

	producers := make(map[catalog.Size]*catalog.BuildingType, len(sizes))
	for _, size := range sizes {
		if faction == nil {
			producers[size] = o.cat.CheapestProducer(good, size)
		} else {
			producers[size] = o.cat.Producer(good, size, faction)
		}
	}

	minProduction := o.band.Scale(producers[sizes[0]].Product().Rate)
	if minProduction <= 0 {
		return kept, false
	}

	for n := len(sizes) - 1; n >= 0; n-- {
		building := producers[sizes[n]]
		product := o.band.Scale(building.Product().Rate)
		quantity := int(math.Floor((need + minProduction - quantityEpsilon) / product))
		o.logger.Debug("considering producer",
			zap.String("good", good.ID()),
			zap.Float64("need", need),
			zap.String("building", building.ID()),
			zap.Float64("unit_output", product),
			zap.Int("quantity", quantity))
		if quantity > 0 {
			kept = append(kept, newProduction(building, quantity))
			need -= float64(quantity) * product
		}
	}

	if math.Abs(need-oldNeed) < changeEpsilon {
		o.logger.Debug("unable to resolve need", zap.String("good", good.ID()))
		return kept, false
	}
	return kept, true
}

func (o *optimizer) all(auto []*Instance) []*Instance {
	all := make([]*Instance, 0, len(o.user)+len(auto))
	all = append(all, o.user...)
	return append(all, auto...)
}

// totalPrice prices user and synthesized buildings plus the kits linking them
func (o *optimizer) totalPrice(auto []*Instance) int64 {
	return totalPrice(o.all(auto), o.cat.Kit())
}

func totalPrice(instances []*Instance, kit catalog.KitSpec) int64 {
	var total int64
	quantity := 0
	for _, inst := range instances {
		total += inst.Price()
		quantity += inst.Quantity()
	}
	return total + int64(kitQuantity(quantity))*int64(kit.Price)
}

func kitQuantity(buildings int) int {
	if buildings > 1 {
		return buildings - 1
	}
	return 0
}
