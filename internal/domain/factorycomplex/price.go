package factorycomplex

// PriceState tells how a custom price is applied
type PriceState int

const (
	// PriceNotSet uses the good's catalog average price
	PriceNotSet PriceState = iota
	// PriceActive uses the custom price
	PriceActive
	// PriceInactive values the good at zero but remembers the last price
	PriceInactive
)

func (s PriceState) String() string {
	switch s {
	case PriceActive:
		return "active"
	case PriceInactive:
		return "inactive"
	default:
		return "not-set"
	}
}

// CustomPrice is a per-good price override
type CustomPrice struct {
	state PriceState
	price int
}

// ActivePrice returns an override in use
func ActivePrice(price int) CustomPrice {
	return CustomPrice{state: PriceActive, price: price}
}

// InactivePrice returns an override marking the good as not in use
func InactivePrice(price int) CustomPrice {
	return CustomPrice{state: PriceInactive, price: price}
}

func (p CustomPrice) State() PriceState { return p.state }

// Price returns the remembered price, whether active or not
func (p CustomPrice) Price() int { return p.price }

// Resolve returns the unit price to use for a good with the given average price
func (p CustomPrice) Resolve(avgPrice int) int {
	switch p.state {
	case PriceActive:
		return p.price
	case PriceInactive:
		return 0
	default:
		return avgPrice
	}
}

// Deactivate keeps the price but stops using it
func (p CustomPrice) Deactivate() CustomPrice {
	if p.state == PriceNotSet {
		return p
	}
	return InactivePrice(p.price)
}

// Activate resumes using the remembered price
func (p CustomPrice) Activate() CustomPrice {
	if p.state == PriceNotSet {
		return p
	}
	return ActivePrice(p.price)
}
