package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bin() Item {
	return Item{ID: 1, Name: "Compost Bin", UnitPrice: 100, Category: "equipment"}
}

func TestStore_AddOrIncrement_NewItem(t *testing.T) {
	s := New()

	s.AddOrIncrement(bin())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_AddOrIncrement_MergesSameID(t *testing.T) {
	s := New()

	s.AddOrIncrement(bin())
	s.AddOrIncrement(bin())
	s.AddOrIncrement(bin())

	items := s.Items()
	require.Len(t, items, 1, "same product must merge, not duplicate")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_UpdateQuantity_RemovesAtZero(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())
	s.AddOrIncrement(bin())

	s.UpdateQuantity(1, -1)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Items()[0].Quantity)

	s.UpdateQuantity(1, -1)
	assert.Empty(t, s.Items(), "quantity reaching zero removes the line")
}

func TestStore_UpdateQuantity_ClampsBelowZero(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())

	s.UpdateQuantity(1, -10)

	assert.Empty(t, s.Items())
}

func TestStore_UpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())

	s.UpdateQuantity(42, 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_QuantityAlwaysPositive(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())
	s.AddOrIncrement(Item{ID: 2, Name: "Gloves", UnitPrice: 10})

	s.UpdateQuantity(1, -3)
	s.UpdateQuantity(2, 2)

	for _, it := range s.Items() {
		assert.Positive(t, it.Quantity)
	}
}

func TestStore_Remove(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())
	s.AddOrIncrement(Item{ID: 2, Name: "Gloves", UnitPrice: 10})

	s.Remove(1)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)

	// unknown id is fine
	s.Remove(99)
	assert.Len(t, s.Items(), 1)
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())
	s.AddOrIncrement(Item{ID: 2, Name: "Gloves", UnitPrice: 10})

	s.Clear()

	assert.Empty(t, s.Items())
	assert.True(t, s.Empty())
}

func TestStore_OnChange_NotifiedOnEveryMutation(t *testing.T) {
	s := New()

	var calls int
	var last []Item
	s.OnChange(func(items []Item) {
		calls++
		last = items
	})

	s.AddOrIncrement(bin())
	s.AddOrIncrement(bin())
	s.UpdateQuantity(1, -1)
	s.Remove(1)
	s.Clear()

	assert.Equal(t, 5, calls)
	assert.Empty(t, last)
}

func TestStore_OnChange_ReceivesCopy(t *testing.T) {
	s := New()

	var seen []Item
	s.OnChange(func(items []Item) { seen = items })

	s.AddOrIncrement(bin())
	seen[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity, "callback must not be able to mutate the store")
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := New()
	s.AddOrIncrement(bin())

	items := s.Items()
	items[0].Quantity = 50

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
