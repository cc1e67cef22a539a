package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/complex-planner/internal/adapters/persistence"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
	"github.com/andrescamacho/complex-planner/test/helpers"
)

type complexRepositoryContext struct {
	repo      *persistence.GormComplexRepository
	savedID   string
	savedCode string
	loaded    *factorycomplex.Complex
	summaries []factorycomplex.Summary
}

func InitializeComplexRepositoryScenario(sc *godog.ScenarioContext) {
	rc := &complexRepositoryContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		rc.repo = nil
		rc.savedID = ""
		rc.savedCode = ""
		rc.loaded = nil
		rc.summaries = nil
		return ctx, nil
	})

	sc.Step(`^an empty complex repository$`, rc.anEmptyRepository)
	sc.Step(`^I save the complex as "([^"]*)"$`, rc.iSaveTheComplexAs)
	sc.Step(`^I load the complex by its ID$`, rc.iLoadByID)
	sc.Step(`^I load the complex named "([^"]*)"$`, rc.iLoadByName)
	sc.Step(`^I delete the complex$`, rc.iDeleteTheComplex)
	sc.Step(`^I list the stored complexes$`, rc.iListComplexes)
	sc.Step(`^the loaded complex should match the saved one$`, rc.loadedShouldMatchSaved)
	sc.Step(`^the listing should show (\d+) complex(?:es)?$`, rc.listingShouldShow)
	sc.Step(`^the listing should show "([^"]*)" with the saved template code$`, rc.listingShouldShowName)
	sc.Step(`^loading the complex should fail with not found$`, rc.loadingShouldFail)
}

func (ctx *complexRepositoryContext) anEmptyRepository() error {
	if helpers.SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	if sharedRegistry == nil {
		return fmt.Errorf("no catalog loaded")
	}
	ctx.repo = persistence.NewGormComplexRepository(helpers.SharedTestDB, sharedRegistry)
	return nil
}

func (ctx *complexRepositoryContext) iSaveTheComplexAs(name string) error {
	sharedComplex.SetName(name)
	if err := ctx.repo.Save(context.Background(), sharedComplex); err != nil {
		return fmt.Errorf("failed to save complex: %w", err)
	}
	code, err := template.Encode(sharedComplex)
	if err != nil {
		return err
	}
	ctx.savedID = sharedComplex.ID()
	ctx.savedCode = code
	return nil
}

func (ctx *complexRepositoryContext) iLoadByID() error {
	ctx.loaded, sharedErr = ctx.repo.FindByID(context.Background(), ctx.savedID)
	return nil
}

func (ctx *complexRepositoryContext) iLoadByName(name string) error {
	ctx.loaded, sharedErr = ctx.repo.FindByName(context.Background(), name)
	return nil
}

func (ctx *complexRepositoryContext) iDeleteTheComplex() error {
	return ctx.repo.Delete(context.Background(), ctx.savedID)
}

func (ctx *complexRepositoryContext) iListComplexes() error {
	summaries, err := ctx.repo.List(context.Background())
	if err != nil {
		return err
	}
	ctx.summaries = summaries
	return nil
}

func (ctx *complexRepositoryContext) loadedShouldMatchSaved() error {
	if sharedErr != nil {
		return fmt.Errorf("loading failed: %w", sharedErr)
	}
	if ctx.loaded.ID() != ctx.savedID {
		return fmt.Errorf("expected ID %s, got %s", ctx.savedID, ctx.loaded.ID())
	}
	code, err := template.Encode(ctx.loaded)
	if err != nil {
		return err
	}
	if code != ctx.savedCode {
		return fmt.Errorf("expected template code %s, got %s", ctx.savedCode, code)
	}
	if ctx.loaded.BuiltKits() != sharedComplex.BuiltKits() {
		return fmt.Errorf("expected %d built kits, got %d", sharedComplex.BuiltKits(), ctx.loaded.BuiltKits())
	}
	return nil
}

func (ctx *complexRepositoryContext) listingShouldShow(count int) error {
	if len(ctx.summaries) != count {
		return fmt.Errorf("expected %d stored complexes, got %d", count, len(ctx.summaries))
	}
	return nil
}

func (ctx *complexRepositoryContext) listingShouldShowName(name string) error {
	for _, s := range ctx.summaries {
		if s.Name == name {
			if s.TemplateCode != ctx.savedCode {
				return fmt.Errorf("expected template code %s for %s, got %s", ctx.savedCode, name, s.TemplateCode)
			}
			return nil
		}
	}
	return fmt.Errorf("no stored complex named %s", name)
}

func (ctx *complexRepositoryContext) loadingShouldFail() error {
	_, err := ctx.repo.FindByID(context.Background(), ctx.savedID)
	var notFound *factorycomplex.NotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("expected not found, got %v", err)
	}
	return nil
}
