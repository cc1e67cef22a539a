package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

type shoppingListContext struct {
	lastMarked bool
}

func InitializeShoppingListScenario(sc *godog.ScenarioContext) {
	sl := &shoppingListContext{}

	sc.Step(`^I mark (\d+) "([^"]*)" buildings? as built$`, sl.iMarkBuildingsBuilt)
	sc.Step(`^I mark (\d+) kits? as built$`, sl.iMarkKitsBuilt)
	sc.Step(`^I revert (\d+) "([^"]*)" buildings?$`, sl.iRevertBuildings)
	sc.Step(`^the last mark should be (accepted|rejected)$`, sl.lastMarkShouldBe)

	sc.Step(`^the shopping list should contain:$`, sl.shoppingListShouldContain)
	sc.Step(`^the shopping list should need (\d+) kits? with (\d+) built$`, sl.shoppingListKits)
	sc.Step(`^the shopping list rest price should be (\d+)$`, sl.restPriceShouldBe)
	sc.Step(`^the shopping list total price should be (\d+)$`, sl.listTotalPriceShouldBe)
	sc.Step(`^the nearest kit seller should be "([^"]*)"$`, sl.nearestKitSellerShouldBe)
	sc.Step(`^there should be no kit seller$`, sl.noKitSeller)
	sc.Step(`^the nearest manufacturer of "([^"]*)" should be "([^"]*)"$`, sl.nearestManufacturerShouldBe)
}

func (ctx *shoppingListContext) iMarkBuildingsBuilt(count int, buildingID string) error {
	for i := 0; i < count; i++ {
		ctx.lastMarked = sharedComplex.BuildBuilding(buildingID)
	}
	return nil
}

func (ctx *shoppingListContext) iMarkKitsBuilt(count int) error {
	for i := 0; i < count; i++ {
		ctx.lastMarked = sharedComplex.BuildKit()
	}
	return nil
}

func (ctx *shoppingListContext) iRevertBuildings(count int, buildingID string) error {
	for i := 0; i < count; i++ {
		ctx.lastMarked = sharedComplex.DestroyBuilding(buildingID)
	}
	return nil
}

func (ctx *shoppingListContext) lastMarkShouldBe(outcome string) error {
	if expected := outcome == "accepted"; ctx.lastMarked != expected {
		return fmt.Errorf("expected the last mark to be %s", outcome)
	}
	return nil
}

func (ctx *shoppingListContext) shoppingListShouldContain(table *godog.Table) error {
	items := sharedComplex.ShoppingList().Items()
	rows := table.Rows[1:]
	if len(items) != len(rows) {
		return fmt.Errorf("expected %d shopping list items, got %d", len(rows), len(items))
	}

	for i, row := range rows {
		want := make([]int, 3)
		for j := range want {
			n, err := strconv.Atoi(row.Cells[j+1].Value)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			want[j] = n
		}

		item := items[i]
		if item.Building().ID() != row.Cells[0].Value {
			return fmt.Errorf("row %d: expected %s, got %s", i+1, row.Cells[0].Value, item.Building().ID())
		}
		got := []int{item.Quantity(), item.QuantityBuilt(), item.QuantityLeft()}
		for j := range want {
			if got[j] != want[j] {
				return fmt.Errorf("row %d (%s): expected quantity/built/left %v, got %v",
					i+1, item.Building().ID(), want, got)
			}
		}
	}
	return nil
}

func (ctx *shoppingListContext) shoppingListKits(quantity, built int) error {
	list := sharedComplex.ShoppingList()
	if list.KitQuantity() != quantity || list.KitQuantityBuilt() != built {
		return fmt.Errorf("expected %d kits with %d built, got %d with %d built",
			quantity, built, list.KitQuantity(), list.KitQuantityBuilt())
	}
	return nil
}

func (ctx *shoppingListContext) restPriceShouldBe(expected int64) error {
	if got := sharedComplex.ShoppingList().TotalRestPrice(); got != expected {
		return fmt.Errorf("expected rest price %d, got %d", expected, got)
	}
	return nil
}

func (ctx *shoppingListContext) listTotalPriceShouldBe(expected int64) error {
	if got := sharedComplex.ShoppingList().TotalPrice(); got != expected {
		return fmt.Errorf("expected shopping list price %d, got %d", expected, got)
	}
	return nil
}

func (ctx *shoppingListContext) nearestKitSellerShouldBe(locationID string) error {
	seller := sharedComplex.ShoppingList().NearestKitSeller()
	if seller == nil {
		return fmt.Errorf("expected kit seller %s, got none", locationID)
	}
	if seller.ID() != locationID {
		return fmt.Errorf("expected kit seller %s, got %s", locationID, seller.ID())
	}
	return nil
}

func (ctx *shoppingListContext) noKitSeller() error {
	if seller := sharedComplex.ShoppingList().NearestKitSeller(); seller != nil {
		return fmt.Errorf("expected no kit seller, got %s", seller.ID())
	}
	return nil
}

func (ctx *shoppingListContext) nearestManufacturerShouldBe(buildingID, locationID string) error {
	item, ok := sharedComplex.ShoppingList().Item(buildingID)
	if !ok {
		return fmt.Errorf("%s is not on the shopping list", buildingID)
	}
	if item.NearestManufacturer() == nil {
		return fmt.Errorf("expected %s to be sold at %s, got nowhere", buildingID, locationID)
	}
	if got := item.NearestManufacturer().ID(); got != locationID {
		return fmt.Errorf("expected %s to be sold at %s, got %s", buildingID, locationID, got)
	}
	return nil
}
