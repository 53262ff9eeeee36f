package services

import (
	"sync"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesSameID(t *testing.T) {
	cart := NewCart()

	_, err := cart.Add(testLine("a", "10", 3))
	require.NoError(t, err)
	_, err = cart.Add(testLine("b", "5", 1))
	require.NoError(t, err)
	merged, err := cart.Add(testLine("a", "10", 2))
	require.NoError(t, err)

	assert.Equal(t, 5, merged.Quantity)
	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].ID)
}

func TestCartAddRejectsMergeAboveCeiling(t *testing.T) {
	cart := NewCart()
	line := testLine("a", "10", 3)
	line.StockCeiling = 4
	_, err := cart.Add(line)
	require.NoError(t, err)

	_, err = cart.Add(line.WithQuantity(2))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, ok := cart.Line("a")
	require.True(t, ok)
	assert.Equal(t, 3, got.Quantity)
}

func TestCartAddRejectsInvalidLines(t *testing.T) {
	cart := NewCart()

	_, err := cart.Add(testLine("", "10", 1))
	assert.ErrorIs(t, err, ErrInvalidLine)
	_, err = cart.Add(testLine("a", "0", 1))
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = cart.Add(testLine("a", "10", 0))
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.True(t, cart.IsEmpty())
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart()
	line := testLine("a", "10", 2)
	line.StockCeiling = 5
	_, err := cart.Add(line)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateQuantity("a", 5))
	got, _ := cart.Line("a")
	assert.Equal(t, 5, got.Quantity)

	err = cart.UpdateQuantity("a", 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	got, _ = cart.Line("a")
	assert.Equal(t, 5, got.Quantity)

	assert.ErrorIs(t, cart.UpdateQuantity("missing", 2), ErrLineNotFound)
	assert.NoError(t, cart.UpdateQuantity("missing", 0))

	require.NoError(t, cart.UpdateQuantity("a", 0))
	assert.True(t, cart.IsEmpty())

	_, err = cart.Add(line)
	require.NoError(t, err)
	require.NoError(t, cart.UpdateQuantity("a", -1))
	assert.True(t, cart.IsEmpty())
}

func TestCartUntrackedLineHasNoCeiling(t *testing.T) {
	cart := NewCart()
	line := testLine("a", "10", 1)
	line.StockCeiling = 0
	_, err := cart.Add(line)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateQuantity("a", 500))
	got, _ := cart.Line("a")
	assert.Equal(t, 500, got.Quantity)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	cart := NewCart()
	var changes []Change
	cart.Subscribe(func(c Change) { changes = append(changes, c) })

	_, err := cart.Add(testLine("a", "10", 1))
	require.NoError(t, err)
	cart.Remove("a")
	cart.Remove("a")
	cart.Remove("never-there")

	assert.True(t, cart.IsEmpty())
	require.Len(t, changes, 2)
	assert.Equal(t, TransitionRemove, changes[1].Kind)
	assert.Equal(t, "a", changes[1].Line.ID)
}

func TestCartLoadKeepsFirstDuplicate(t *testing.T) {
	cart := NewCart()
	cart.Load([]models.CartLine{testLine("a", "10", 1), testLine("b", "2", 1), testLine("a", "99", 7)})

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "10", lines[0].UnitPrice.String())
}

func TestCartClearAndListeners(t *testing.T) {
	cart := NewCart()
	var kinds []TransitionKind
	var reason ClearReason
	cart.Subscribe(func(c Change) {
		kinds = append(kinds, c.Kind)
		if c.Kind == TransitionClear {
			reason = c.Reason
			assert.Empty(t, c.Lines)
		}
	})

	cart.Load([]models.CartLine{testLine("a", "1", 1)})
	_, _ = cart.Add(testLine("b", "1", 1))
	_ = cart.UpdateQuantity("b", 3)
	cart.Clear(ClearReasonOrder)

	assert.Equal(t, []TransitionKind{TransitionLoad, TransitionAdd, TransitionUpdateQuantity, TransitionClear}, kinds)
	assert.Equal(t, ClearReasonOrder, reason)
	assert.Zero(t, cart.Len())
}

func TestCartLinesIsACopy(t *testing.T) {
	cart := NewCart()
	_, _ = cart.Add(testLine("a", "1", 1))

	lines := cart.Lines()
	lines[0].Quantity = 42

	got, _ := cart.Line("a")
	assert.Equal(t, 1, got.Quantity)
}

func TestCartConcurrentAdds(t *testing.T) {
	cart := NewCart()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cart.Add(testLine("a", "1", 1))
		}()
	}
	wg.Wait()

	got, ok := cart.Line("a")
	require.True(t, ok)
	assert.Equal(t, 50, got.Quantity)
	assert.Equal(t, 1, cart.Len())
}

func TestCartRemoveOrdered(t *testing.T) {
	cart := NewCart()
	_, _ = cart.Add(testLine("a", "1", 2))
	ordered := cart.Lines()
	_, _ = cart.Add(testLine("a", "1", 3))
	_, _ = cart.Add(testLine("b", "1", 1))

	var last Change
	cart.Subscribe(func(c Change) { last = c })
	cart.RemoveOrdered(ordered)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].ID)
	assert.Equal(t, TransitionClear, last.Kind)
	assert.Equal(t, ClearReasonOrder, last.Reason)

	cart.RemoveOrdered(cart.Lines())
	assert.True(t, cart.IsEmpty())
}
