package factorycomplex

import (
	"sort"

	"go.uber.org/zap"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
	"github.com/andrescamacho/complex-planner/internal/domain/shopping"
)

// DefaultName is the name of a complex created without one
const DefaultName = "New Complex"

// MaxQuantity is the largest quantity IncreaseQuantity will reach
const MaxQuantity = 999

// Complex is a planned factory complex. Every mutating operation leaves the
// synthesized buildings and the shopping list recomputed.
//
// A Complex is not safe for concurrent use.
type Complex struct {
	id       string
	name     string
	cat      *catalog.Catalog
	band     environment.Band
	location *catalog.Location

	user        []*Instance
	synthesized []*Instance

	customPrices   map[string]CustomPrice
	autoFill       bool
	builtBuildings map[string]int
	builtKits      int

	excluded  map[string]bool
	maxPasses int
	logger    *zap.Logger
	recorder  Recorder

	shoppingList *shopping.List
	lastStats    OptimizationStats
}

// Option configures a Complex
type Option func(*Complex)

// WithID sets the complex identity
func WithID(id string) Option {
	return func(c *Complex) { c.id = id }
}

// WithName sets the complex name
func WithName(name string) Option {
	return func(c *Complex) { c.name = name }
}

// WithLogger sets the logger used by the optimizer
func WithLogger(logger *zap.Logger) Option {
	return func(c *Complex) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the receiver of optimizer statistics
func WithRecorder(r Recorder) Option {
	return func(c *Complex) { c.recorder = r }
}

// WithExcludedFactions skips factions during pivotal-good exploration and
// kit seller search
func WithExcludedFactions(ids ...string) Option {
	return func(c *Complex) {
		for _, id := range ids {
			c.excluded[id] = true
		}
	}
}

// WithMaxPasses overrides the greedy fill pass limit
func WithMaxPasses(n int) Option {
	return func(c *Complex) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

// WithAutoFill sets the initial auto-fill state
func WithAutoFill(enabled bool) Option {
	return func(c *Complex) { c.autoFill = enabled }
}

// New creates an empty complex for a game catalog
func New(cat *catalog.Catalog, opts ...Option) *Complex {
	c := &Complex{
		name:           DefaultName,
		cat:            cat,
		band:           cat.Bands().Default(),
		customPrices:   make(map[string]CustomPrice),
		builtBuildings: make(map[string]int),
		excluded:       make(map[string]bool),
		maxPasses:      DefaultMaxPasses,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recalculate()
	return c
}

// recalculate re-runs the optimizer and rebuilds the shopping list
func (c *Complex) recalculate() {
	c.optimize()
	c.updateShoppingList()
}

func (c *Complex) optimize() {
	c.synthesized = nil
	c.lastStats = OptimizationStats{Game: c.cat.Game().ID()}
	if !c.autoFill {
		return
	}

	o := &optimizer{
		cat:       c.cat,
		band:      c.Band(),
		user:      c.user,
		price:     c.GoodPrice,
		excluded:  c.isExcluded,
		maxPasses: c.maxPasses,
		logger:    c.logger.With(zap.String("complex", c.name)),
	}
	c.synthesized, c.lastStats = o.run()

	if c.recorder != nil {
		c.recorder.RecordOptimization(c.lastStats)
	}
}

func (c *Complex) isExcluded(f *catalog.Faction) bool {
	return c.excluded[f.ID()]
}

func (c *Complex) userAt(index int) (*Instance, error) {
	if index < 0 || index >= len(c.user) {
		return nil, &IndexError{List: "building", Index: index, Len: len(c.user)}
	}
	return c.user[index], nil
}

// ID returns the complex identity, empty until assigned
func (c *Complex) ID() string { return c.id }

// SetID assigns the identity of a stored complex
func (c *Complex) SetID(id string) { c.id = id }

func (c *Complex) Name() string { return c.name }

// SetName renames the complex
func (c *Complex) SetName(name string) { c.name = name }

// Catalog returns the reference data the complex is planned against
func (c *Complex) Catalog() *catalog.Catalog { return c.cat }

// Band returns the effective environmental band: the location's band when a
// location is set, otherwise the configured one
func (c *Complex) Band() environment.Band {
	if c.location != nil {
		if band, err := c.cat.Band(c.location.BandPercent()); err == nil {
			return band
		}
	}
	return c.band
}

// ConfiguredBand returns the band set directly on the complex
func (c *Complex) ConfiguredBand() environment.Band { return c.band }

// Location returns the assigned location or nil
func (c *Complex) Location() *catalog.Location { return c.location }

func (c *Complex) AutoFill() bool { return c.autoFill }

// ExcludedFactions returns the excluded faction ids, sorted
func (c *Complex) ExcludedFactions() []string {
	out := make([]string, 0, len(c.excluded))
	for id := range c.excluded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LastOptimization returns the statistics of the latest optimizer run
func (c *Complex) LastOptimization() OptimizationStats { return c.lastStats }

// Buildings returns the user instances in display order
func (c *Complex) Buildings() []Instance { return values(c.user) }

// Synthesized returns the instances added by the optimizer
func (c *Complex) Synthesized() []Instance { return values(c.synthesized) }

// all returns user and synthesized instances
func (c *Complex) all() []*Instance {
	all := make([]*Instance, 0, len(c.user)+len(c.synthesized))
	all = append(all, c.user...)
	return append(all, c.synthesized...)
}

// AddBuilding adds production buildings
func (c *Complex) AddBuilding(buildingID string, quantity int) error {
	return c.addBuilding(buildingID, quantity, false)
}

// AddDisabledBuilding adds production buildings excluded from netting. They
// merge only with other disabled instances of the same type.
func (c *Complex) AddDisabledBuilding(buildingID string, quantity int) error {
	return c.addBuilding(buildingID, quantity, true)
}

func (c *Complex) addBuilding(buildingID string, quantity int, disabled bool) error {
	building, err := c.cat.Building(buildingID)
	if err != nil {
		return err
	}
	if building.IsExtraction() {
		return &BuildingKindError{Building: buildingID, Extraction: true, Operation: "add by quantity"}
	}
	if quantity < 1 {
		return &InvalidValueError{Field: "quantity", Message: "must be at least 1"}
	}
	inst := newProduction(building, quantity)
	inst.disabled = disabled
	c.user = insert(c.user, inst)
	c.recalculate()
	return nil
}

// AddExtraction adds an extraction building with one yield per slot
func (c *Complex) AddExtraction(buildingID string, yields []int) error {
	return c.addExtraction(buildingID, yields, false)
}

// AddDisabledExtraction adds an extraction building excluded from netting
func (c *Complex) AddDisabledExtraction(buildingID string, yields []int) error {
	return c.addExtraction(buildingID, yields, true)
}

func (c *Complex) addExtraction(buildingID string, yields []int, disabled bool) error {
	building, err := c.cat.Building(buildingID)
	if err != nil {
		return err
	}
	if !building.IsExtraction() {
		return &BuildingKindError{Building: buildingID, Extraction: false, Operation: "add by yields"}
	}
	if err := checkYields(yields); err != nil {
		return err
	}
	inst := newExtraction(building, yields)
	inst.disabled = disabled
	c.user = insert(c.user, inst)
	c.recalculate()
	return nil
}

func checkYields(yields []int) error {
	if len(yields) == 0 {
		return &InvalidValueError{Field: "yields", Message: "at least one slot is required"}
	}
	for _, y := range yields {
		if y < 0 {
			return &InvalidValueError{Field: "yields", Message: "yields must not be negative"}
		}
	}
	return nil
}

// Remove deletes a user instance
func (c *Complex) Remove(index int) error {
	if _, err := c.userAt(index); err != nil {
		return err
	}
	c.user = append(c.user[:index], c.user[index+1:]...)
	c.recalculate()
	return nil
}

// Disable excludes a user instance from netting. It still counts towards
// quantity, price and the shopping list.
func (c *Complex) Disable(index int) error {
	inst, err := c.userAt(index)
	if err != nil {
		return err
	}
	inst.disabled = true
	c.recalculate()
	return nil
}

// Enable includes a disabled user instance in netting again
func (c *Complex) Enable(index int) error {
	inst, err := c.userAt(index)
	if err != nil {
		return err
	}
	inst.disabled = false
	c.recalculate()
	return nil
}

// AcceptSynthesized moves a synthesized instance into the user instances
func (c *Complex) AcceptSynthesized(index int) error {
	if index < 0 || index >= len(c.synthesized) {
		return &IndexError{List: "synthesized building", Index: index, Len: len(c.synthesized)}
	}
	c.user = insert(c.user, c.synthesized[index].clone())
	c.recalculate()
	return nil
}

// SetQuantity changes the quantity of a production instance
func (c *Complex) SetQuantity(index, quantity int) error {
	inst, err := c.userAt(index)
	if err != nil {
		return err
	}
	if inst.building.IsExtraction() {
		return &BuildingKindError{Building: inst.building.ID(), Extraction: true, Operation: "set quantity"}
	}
	if quantity < 1 {
		return &InvalidValueError{Field: "quantity", Message: "must be at least 1"}
	}
	if inst.quantity == quantity {
		return nil
	}
	inst.quantity = quantity
	c.recalculate()
	return nil
}

// IncreaseQuantity adds one building to a production instance. It reports
// whether the quantity changed.
func (c *Complex) IncreaseQuantity(index int) (bool, error) {
	inst, err := c.userAt(index)
	if err != nil {
		return false, err
	}
	if inst.building.IsExtraction() || inst.quantity >= MaxQuantity {
		return false, nil
	}
	inst.quantity++
	c.recalculate()
	return true, nil
}

// DecreaseQuantity removes one building from a production instance, never
// going below one. It reports whether the quantity changed.
func (c *Complex) DecreaseQuantity(index int) (bool, error) {
	inst, err := c.userAt(index)
	if err != nil {
		return false, err
	}
	if inst.building.IsExtraction() || inst.quantity <= 1 {
		return false, nil
	}
	inst.quantity--
	c.recalculate()
	return true, nil
}

// SetYields replaces the slot yields of an extraction instance
func (c *Complex) SetYields(index int, yields []int) error {
	inst, err := c.userAt(index)
	if err != nil {
		return err
	}
	if !inst.building.IsExtraction() {
		return &BuildingKindError{Building: inst.building.ID(), Extraction: false, Operation: "set yields"}
	}
	if err := checkYields(yields); err != nil {
		return err
	}
	inst.yields = append([]int(nil), yields...)
	sortInstances(c.user)
	c.recalculate()
	return nil
}

// SetBand sets the environmental band by percent
func (c *Complex) SetBand(percent int) error {
	band, err := c.cat.Band(percent)
	if err != nil {
		return err
	}
	c.band = band
	c.recalculate()
	return nil
}

// SetLocation assigns a location by id; its band overrides the configured one
func (c *Complex) SetLocation(locationID string) error {
	location, err := c.cat.Location(locationID)
	if err != nil {
		return err
	}
	if location == c.location {
		return nil
	}
	c.location = location
	c.recalculate()
	return nil
}

// ClearLocation removes the location assignment
func (c *Complex) ClearLocation() {
	if c.location == nil {
		return
	}
	c.location = nil
	c.recalculate()
}

// SetAutoFill turns the optimizer on or off
func (c *Complex) SetAutoFill(enabled bool) {
	c.autoFill = enabled
	c.recalculate()
}

// ToggleAutoFill flips the optimizer state
func (c *Complex) ToggleAutoFill() {
	c.SetAutoFill(!c.autoFill)
}

// SetCustomPrice sets the price override of a good
func (c *Complex) SetCustomPrice(goodID string, price CustomPrice) error {
	if _, err := c.cat.Good(goodID); err != nil {
		return err
	}
	if price.State() == PriceNotSet {
		delete(c.customPrices, goodID)
	} else {
		c.customPrices[goodID] = price
	}
	c.recalculate()
	return nil
}

// ClearCustomPrice reverts a good to its catalog average price
func (c *Complex) ClearCustomPrice(goodID string) error {
	return c.SetCustomPrice(goodID, CustomPrice{})
}

// SetCustomPrices replaces the whole override table
func (c *Complex) SetCustomPrices(prices map[string]CustomPrice) error {
	next := make(map[string]CustomPrice, len(prices))
	for id, p := range prices {
		if _, err := c.cat.Good(id); err != nil {
			return err
		}
		if p.State() != PriceNotSet {
			next[id] = p
		}
	}
	c.customPrices = next
	c.recalculate()
	return nil
}

// CustomPrice returns the override of a good
func (c *Complex) CustomPrice(goodID string) CustomPrice {
	return c.customPrices[goodID]
}

// CustomPrices returns a copy of the override table
func (c *Complex) CustomPrices() map[string]CustomPrice {
	out := make(map[string]CustomPrice, len(c.customPrices))
	for id, p := range c.customPrices {
		out[id] = p
	}
	return out
}

// GoodPrice returns the effective unit price of a good
func (c *Complex) GoodPrice(good *catalog.Good) int {
	return c.customPrices[good.ID()].Resolve(good.AvgPrice())
}

// NetGoods returns the per-good balance of all enabled instances
func (c *Complex) NetGoods() []NetGood {
	return Net(c.all(), c.Band(), c.GoodPrice)
}

// Deficits returns the goods consumed faster than produced
func (c *Complex) Deficits() []NetGood {
	var out []NetGood
	for _, n := range c.NetGoods() {
		if n.Deficit() > 0 {
			out = append(out, n)
		}
	}
	return out
}

// Profit returns the per-hour value of all surpluses minus all deficits
func (c *Complex) Profit() float64 {
	total := 0.0
	for _, n := range c.NetGoods() {
		total += n.Profit()
	}
	return total
}

// TotalQuantity counts user and synthesized buildings, disabled included
func (c *Complex) TotalQuantity() int {
	total := 0
	for _, inst := range c.all() {
		total += inst.Quantity()
	}
	return total
}

// KitQuantity is the number of construction kits needed
func (c *Complex) KitQuantity() int { return kitQuantity(c.TotalQuantity()) }

// TotalKitPrice is the price of all construction kits
func (c *Complex) TotalKitPrice() int64 {
	return int64(c.KitQuantity()) * int64(c.cat.Kit().Price)
}

// TotalPrice is the price of all buildings and kits
func (c *Complex) TotalPrice() int64 {
	return totalPrice(c.all(), c.cat.Kit())
}

// IsEmpty reports whether the complex has no user instances
func (c *Complex) IsEmpty() bool { return len(c.user) == 0 }

// HasExtraction reports whether a user instance is an extraction building
func (c *Complex) HasExtraction() bool {
	for _, inst := range c.user {
		if inst.building.IsExtraction() {
			return true
		}
	}
	return false
}

// UsesGood reports whether any building produces or consumes the good
func (c *Complex) UsesGood(goodID string) bool {
	for _, inst := range c.all() {
		if inst.building.Product().Good.ID() == goodID {
			return true
		}
		for _, r := range inst.building.Resources() {
			if r.Good.ID() == goodID {
				return true
			}
		}
	}
	return false
}
