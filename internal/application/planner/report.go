package planner

import (
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// BuildingLine is one user or synthesized building instance
type BuildingLine struct {
	BuildingID  string
	Name        string
	Quantity    int
	Yields      []int
	Price       int64
	Synthesized bool
	Disabled    bool
}

// GoodLine is the net flow of one good per hour
type GoodLine struct {
	GoodID   string
	Name     string
	Produced float64
	Consumed float64
	Net      float64
	Price    int
	Profit   float64
}

// ShoppingLine is one entry of the shopping list
type ShoppingLine struct {
	BuildingID          string
	Name                string
	Quantity            int
	Built               int
	Left                int
	Price               int64
	RestPrice           int64
	Volume              int64
	NearestManufacturer string
}

// Report is the derived view of a complex
type Report struct {
	ID           string
	Name         string
	Game         string
	BandPercent  int
	Location     string
	AutoFill     bool
	Buildings    []BuildingLine
	Goods        []GoodLine
	Deficits     []GoodLine
	Shopping     []ShoppingLine
	KitQuantity  int
	KitsBuilt    int
	KitPrice     int64
	KitSeller    string
	TotalCount   int
	TotalPrice   int64
	RestPrice    int64
	Profit       float64
	TemplateCode string
	Optimization factorycomplex.OptimizationStats
}

func newReport(c *factorycomplex.Complex, code string) *Report {
	r := &Report{
		ID:           c.ID(),
		Name:         c.Name(),
		Game:         c.Catalog().Game().ID(),
		BandPercent:  c.Band().Percent,
		AutoFill:     c.AutoFill(),
		TotalCount:   c.TotalQuantity(),
		TotalPrice:   c.TotalPrice(),
		Profit:       c.Profit(),
		TemplateCode: code,
		Optimization: c.LastOptimization(),
	}
	if loc := c.Location(); loc != nil {
		r.Location = loc.Name()
	}

	for _, inst := range c.Buildings() {
		r.Buildings = append(r.Buildings, buildingLine(inst, false))
	}
	for _, inst := range c.Synthesized() {
		r.Buildings = append(r.Buildings, buildingLine(inst, true))
	}

	for _, n := range c.NetGoods() {
		r.Goods = append(r.Goods, goodLine(n))
	}
	for _, n := range c.Deficits() {
		r.Deficits = append(r.Deficits, goodLine(n))
	}

	list := c.ShoppingList()
	for _, item := range list.Items() {
		line := ShoppingLine{
			BuildingID: item.Building().ID(),
			Name:       item.Building().Name(),
			Quantity:   item.Quantity(),
			Built:      item.QuantityBuilt(),
			Left:       item.QuantityLeft(),
			Price:      item.TotalPrice(),
			RestPrice:  item.RestPrice(),
			Volume:     item.TotalVolume(),
		}
		if m := item.NearestManufacturer(); m != nil {
			line.NearestManufacturer = m.Name()
		}
		r.Shopping = append(r.Shopping, line)
	}
	r.KitQuantity = list.KitQuantity()
	r.KitsBuilt = list.KitQuantityBuilt()
	r.KitPrice = list.TotalKitPrice()
	r.RestPrice = list.TotalRestPrice()
	if seller := list.NearestKitSeller(); seller != nil {
		r.KitSeller = seller.Name()
	}

	return r
}

func buildingLine(inst factorycomplex.Instance, synthesized bool) BuildingLine {
	return BuildingLine{
		BuildingID:  inst.Building().ID(),
		Name:        inst.Building().Name(),
		Quantity:    inst.Quantity(),
		Yields:      inst.Yields(),
		Price:       inst.Price(),
		Synthesized: synthesized,
		Disabled:    !inst.Enabled(),
	}
}

func goodLine(n factorycomplex.NetGood) GoodLine {
	return GoodLine{
		GoodID:   n.Good().ID(),
		Name:     n.Good().Name(),
		Produced: n.Produced(),
		Consumed: n.Consumed(),
		Net:      n.Produced() - n.Consumed(),
		Price:    n.Price(),
		Profit:   n.Profit(),
	}
}
