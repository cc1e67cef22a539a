package planner

import (
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// BuildingRequest adds one building type to a planned complex. Production
// buildings take a quantity, extraction buildings one yield per slot.
type BuildingRequest struct {
	BuildingID string `yaml:"building" json:"building" validate:"required"`
	Quantity   int    `yaml:"quantity,omitempty" json:"quantity,omitempty" validate:"required_without=Yields,excluded_with=Yields,omitempty,min=1,max=999"`
	Yields     []int  `yaml:"yields,omitempty" json:"yields,omitempty" validate:"required_without=Quantity,omitempty,min=1,dive,min=0,max=999"`
	Disabled   bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// PriceRequest overrides the price of a good. Unused goods are valued at
// zero while their price is remembered.
type PriceRequest struct {
	GoodID string `yaml:"good" json:"good" validate:"required"`
	Price  int    `yaml:"price" json:"price" validate:"min=0"`
	Unused bool   `yaml:"unused,omitempty" json:"unused,omitempty"`
}

// PlanCommand builds a complex from a list of buildings
type PlanCommand struct {
	Game             string            `yaml:"game,omitempty" json:"game,omitempty"`
	Name             string            `yaml:"name,omitempty" json:"name,omitempty" validate:"max=200"`
	BandPercent      *int              `yaml:"suns,omitempty" json:"suns,omitempty" validate:"omitempty,min=0"`
	LocationID       string            `yaml:"location,omitempty" json:"location,omitempty"`
	AutoFill         *bool             `yaml:"autoFill,omitempty" json:"autoFill,omitempty"`
	ExcludedFactions []string          `yaml:"excludedFactions,omitempty" json:"excludedFactions,omitempty" validate:"dive,required"`
	Buildings        []BuildingRequest `yaml:"buildings" json:"buildings" validate:"dive"`
	Prices           []PriceRequest    `yaml:"prices,omitempty" json:"prices,omitempty" validate:"dive"`
}

// PlanResponse carries a planned complex and its report
type PlanResponse struct {
	Complex *factorycomplex.Complex
	Report  *Report
}

// DecodeTemplateCommand builds a complex from a template code
type DecodeTemplateCommand struct {
	Code     string `validate:"required"`
	Name     string `validate:"max=200"`
	AutoFill bool
}

// ValidateTemplateQuery checks a template code without building a complex
type ValidateTemplateQuery struct {
	Code string
}

// ValidateTemplateResponse tells whether a template code is valid
type ValidateTemplateResponse struct {
	Valid  bool
	Reason string
}

// EncodeTemplateQuery produces the template code of a complex
type EncodeTemplateQuery struct {
	Complex *factorycomplex.Complex `validate:"required"`
}

// EncodeTemplateResponse carries a template code
type EncodeTemplateResponse struct {
	Code string
}

// SaveComplexCommand stores a complex, optionally renaming it first
type SaveComplexCommand struct {
	Complex *factorycomplex.Complex `validate:"required"`
	Name    string                  `validate:"max=200"`
}

// SaveComplexResponse carries the stored complex id
type SaveComplexResponse struct {
	ID string
}

// LoadComplexQuery loads a stored complex by id or by name
type LoadComplexQuery struct {
	ID   string `validate:"required_without=Name"`
	Name string
}

// ListComplexesQuery lists the stored complexes
type ListComplexesQuery struct{}

// DeleteComplexCommand removes a stored complex
type DeleteComplexCommand struct {
	ID string `validate:"required"`
}

// ReportQuery builds the report of a complex
type ReportQuery struct {
	Complex *factorycomplex.Complex `validate:"required"`
}
