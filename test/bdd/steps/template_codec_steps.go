package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
)

type templateCodecContext struct {
	code  string
	valid bool
}

func InitializeTemplateCodecScenario(sc *godog.ScenarioContext) {
	tc := &templateCodecContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		tc.code = ""
		tc.valid = false
		return ctx, nil
	})

	sc.Step(`^I encode the complex$`, tc.iEncodeTheComplex)
	sc.Step(`^I decode the template code "([^"]*)"$`, tc.iDecodeCode)
	sc.Step(`^I decode the template code$`, tc.iDecodeEncodedCode)
	sc.Step(`^I validate the template code "([^"]*)"$`, tc.iValidateCode)
	sc.Step(`^the template code should be "([^"]*)"$`, tc.codeShouldBe)
	sc.Step(`^re-encoding the complex should give the same code$`, tc.reEncodingGivesSameCode)
	sc.Step(`^the template code should be (valid|invalid)$`, tc.codeShouldBeValid)
	sc.Step(`^decoding should fail with an invalid code error$`, tc.decodingShouldFail)
	sc.Step(`^the complex should hold:$`, tc.complexShouldHold)
	sc.Step(`^the complex should be at "([^"]*)"$`, tc.complexShouldBeAt)
	sc.Step(`^the complex should have no location$`, tc.complexShouldHaveNoLocation)
}

func (ctx *templateCodecContext) iEncodeTheComplex() error {
	code, err := template.Encode(sharedComplex)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	ctx.code = code
	return nil
}

func (ctx *templateCodecContext) iDecodeCode(code string) error {
	ctx.code = code
	return ctx.iDecodeEncodedCode()
}

func (ctx *templateCodecContext) iDecodeEncodedCode() error {
	if sharedRegistry == nil {
		return fmt.Errorf("no catalog loaded")
	}
	c, err := template.Decode(sharedRegistry, ctx.code)
	sharedErr = err
	if err == nil {
		sharedComplex = c
	}
	return nil
}

func (ctx *templateCodecContext) iValidateCode(code string) error {
	ctx.code = code
	ctx.valid = template.Validate(sharedRegistry, code)
	return nil
}

func (ctx *templateCodecContext) codeShouldBe(expected string) error {
	if ctx.code != expected {
		return fmt.Errorf("expected template code %q, got %q", expected, ctx.code)
	}
	return nil
}

func (ctx *templateCodecContext) reEncodingGivesSameCode() error {
	again, err := template.Encode(sharedComplex)
	if err != nil {
		return err
	}
	if again != ctx.code {
		return fmt.Errorf("round trip changed the code: %q became %q", ctx.code, again)
	}
	return nil
}

func (ctx *templateCodecContext) codeShouldBeValid(state string) error {
	if expected := state == "valid"; ctx.valid != expected {
		return fmt.Errorf("expected %q to be %s", ctx.code, state)
	}
	return nil
}

func (ctx *templateCodecContext) decodingShouldFail() error {
	var invalid *template.InvalidCodeError
	if !errors.As(sharedErr, &invalid) {
		return fmt.Errorf("expected an invalid code error, got %v", sharedErr)
	}
	return nil
}

// complexShouldHold compares the user buildings: building, quantity, yields
func (ctx *templateCodecContext) complexShouldHold(table *godog.Table) error {
	if sharedErr != nil {
		return fmt.Errorf("decoding failed: %w", sharedErr)
	}
	got := factorycomplex.Canonical(sharedComplex.Buildings())
	rows := table.Rows[1:]
	if len(got) != len(rows) {
		return fmt.Errorf("expected %d buildings, got %d (%s)", len(rows), len(got), describe(got))
	}
	for i, row := range rows {
		quantity, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		inst := got[i]
		if inst.Building().ID() != row.Cells[0].Value || inst.Quantity() != quantity {
			return fmt.Errorf("row %d: expected %s x%d, got %s", i+1, row.Cells[0].Value, quantity, describe(got))
		}
		if len(row.Cells) > 2 && row.Cells[2].Value != "" {
			if yields := fmt.Sprint(inst.Yields()); yields != row.Cells[2].Value {
				return fmt.Errorf("row %d: expected yields %s, got %s", i+1, row.Cells[2].Value, yields)
			}
		}
	}
	return nil
}

func (ctx *templateCodecContext) complexShouldBeAt(locationID string) error {
	loc := sharedComplex.Location()
	if loc == nil || loc.ID() != locationID {
		return fmt.Errorf("expected the complex at %s, got %v", locationID, loc)
	}
	return nil
}

func (ctx *templateCodecContext) complexShouldHaveNoLocation() error {
	if loc := sharedComplex.Location(); loc != nil {
		return fmt.Errorf("expected no location, got %s", loc.ID())
	}
	return nil
}
