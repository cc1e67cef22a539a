package shopping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/domain/shopping"
	"github.com/andrescamacho/complex-planner/test/fixtures"
)

func TestList_AddItemMergesByBuilding(t *testing.T) {
	// Arrange
	c := fixtures.NewTestCatalog(t)
	spp, err := c.Building("spp-m-alpha")
	require.NoError(t, err)
	list := shopping.NewList(c.Kit(), nil, 1)

	// Act
	list.AddItem(shopping.NewItem(spp, 3, nil, 0))

	// Assert
	assert.Equal(t, 5, list.TotalQuantity())
	assert.Equal(t, 2, list.KitQuantity())
	assert.Equal(t, 1, list.KitQuantityBuilt())
	assert.Equal(t, 1, list.KitQuantityLeft())
	assert.Len(t, list.Items(), 1)

	// Act
	list.AddItem(shopping.NewItem(spp, 2, nil, 5))

	// Assert
	assert.Equal(t, 9, list.TotalQuantity())
	assert.Equal(t, 4, list.KitQuantity())
	assert.Equal(t, 3, list.KitQuantityLeft())
	assert.Equal(t, 6, list.TotalQuantityBuilt())
	assert.Equal(t, 3, list.TotalQuantityLeft())
	require.Len(t, list.Items(), 1)
	assert.Equal(t, 5, list.Items()[0].QuantityBuilt())
}

func TestList_PricesAndVolumes(t *testing.T) {
	// Arrange
	c := fixtures.NewTestCatalog(t)
	spp, _ := c.Building("spp-m-alpha")
	food, _ := c.Building("food-a-m")
	home, _ := c.Location("home")
	list := shopping.NewList(c.Kit(), home, 1)

	// Act
	list.AddItem(shopping.NewItem(spp, 2, home, 1))
	list.AddItem(shopping.NewItem(food, 1, home, 0))

	// Assert
	assert.Equal(t, int64(2*800000+100000+2*fixtures.TestKitPrice), list.TotalPrice())
	assert.Equal(t, int64(800000+100000+fixtures.TestKitPrice), list.TotalRestPrice())
	assert.Equal(t, int64(2*3000+1500+2*fixtures.TestKitVolume), list.TotalVolume())
	assert.Equal(t, int64(3000+1500+fixtures.TestKitVolume), list.TotalRestVolume())
	assert.Same(t, home, list.NearestKitSeller())
}

func TestList_ItemsSortedByName(t *testing.T) {
	c := fixtures.NewTestCatalog(t)
	spp, _ := c.Building("spp-m-alpha")
	fab, _ := c.Building("crystal-m-beta")
	food, _ := c.Building("food-a-m")
	list := shopping.NewList(c.Kit(), nil, 0)

	list.AddItem(shopping.NewItem(spp, 1, nil, 0))
	list.AddItem(shopping.NewItem(food, 1, nil, 0))
	list.AddItem(shopping.NewItem(fab, 1, nil, 0))

	var names []string
	for _, item := range list.Items() {
		names = append(names, item.Building().Name())
	}
	assert.Equal(t, []string{"Crystal Fab M (Beta)", "Food Farm M (Alpha)", "Solar Plant M (Alpha)"}, names)

	item, ok := list.Item("food-a-m")
	require.True(t, ok)
	assert.Equal(t, 1, item.QuantityLeft())
	_, ok = list.Item("spp-l-alpha")
	assert.False(t, ok)
}

func TestList_EmptyListNeedsNoKits(t *testing.T) {
	c := fixtures.NewTestCatalog(t)

	list := shopping.NewList(c.Kit(), nil, 0)

	assert.Equal(t, 0, list.KitQuantity())
	assert.Equal(t, 0, list.TotalQuantity())
	assert.Equal(t, int64(0), list.TotalPrice())
}
