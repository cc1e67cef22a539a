package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/complex-planner/test/bdd/steps"
	"github.com/andrescamacho/complex-planner/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// ComplexScenario registered first: it resets the shared complex and
	// error that the other contexts read
	steps.InitializeComplexScenario(sc)
	steps.InitializeShoppingListScenario(sc)
	steps.InitializeTemplateCodecScenario(sc)

	// Adapter layer scenarios
	steps.InitializeComplexRepositoryScenario(sc)
}

func TestMain(m *testing.M) {
	// One migrated in-memory database for all repository scenarios
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	helpers.CloseSharedTestDB()
	os.Exit(code)
}
