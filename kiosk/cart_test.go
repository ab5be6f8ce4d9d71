package kiosk

import (
	"errors"
	"sync"
	"testing"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pizza = models.MenuItem{ID: "pizza", Icon: "🍕", Name: "Pizza", Price: 180, ImagePath: "/assets/pizza.png"}
	fries = models.MenuItem{ID: "fries", Icon: "🍟", Name: "Fries", Price: 80, ImagePath: "/assets/fries.png"}
)

func TestCartAddSameItemTwiceKeepsTwoLines(t *testing.T) {
	c := NewCart()

	first, err := c.Add(pizza, 2)
	require.NoError(t, err)
	second, err := c.Add(pizza, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2*180+3*180, c.Total())
	assert.Equal(t, 5, c.ItemCount())

	lines := c.Lines()
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 3, lines[1].Quantity)
	assert.Equal(t, "/assets/pizza.png", lines[0].ImagePath)
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart()
	for _, q := range []int{0, -1} {
		_, err := c.Add(pizza, q)
		assert.True(t, apperr.IsValidation(err), "quantity %d", q)
	}
	assert.Equal(t, 0, c.Len())
}

func TestCartEmptyTotals(t *testing.T) {
	c := NewCart()
	assert.Equal(t, 0, c.Total())
	assert.Equal(t, 0, c.ItemCount())
	assert.Empty(t, c.Lines())
}

func TestCartRemoveAt(t *testing.T) {
	c := NewCart()
	_, _ = c.Add(pizza, 1)
	_, _ = c.Add(fries, 2)
	_, _ = c.Add(pizza, 1)

	require.NoError(t, c.RemoveAt(1))
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Pizza", lines[0].Name)
	assert.Equal(t, "Pizza", lines[1].Name)
	assert.Equal(t, 360, c.Total())
}

func TestCartRemoveAtOutOfRangeLeavesCartUnchanged(t *testing.T) {
	empty := NewCart()
	err := empty.RemoveAt(0)
	assert.True(t, errors.Is(err, apperr.ErrOutOfRange))

	c := NewCart()
	_, _ = c.Add(fries, 2)
	before := c.Lines()
	for _, pos := range []int{-1, 1, 5} {
		err := c.RemoveAt(pos)
		assert.ErrorIs(t, err, apperr.ErrOutOfRange)
	}
	assert.Equal(t, before, c.Lines())
}

func TestCartClear(t *testing.T) {
	c := NewCart()
	_, _ = c.Add(fries, 2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Total())
}

func TestCartCommitClearsOnlyOnSuccess(t *testing.T) {
	c := NewCart()
	_, _ = c.Add(pizza, 1)
	_, _ = c.Add(fries, 2)

	boom := errors.New("boom")
	err := c.Commit(func(lines []models.CartLine, total int) error {
		assert.Len(t, lines, 2)
		assert.Equal(t, 340, total)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, c.Len())

	var seen int
	err = c.Commit(func(_ []models.CartLine, total int) error {
		seen = total
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 340, seen)
	assert.Equal(t, 0, c.Len())
}

func TestCartConcurrentAdds(t *testing.T) {
	c := NewCart()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Add(fries, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
	assert.Equal(t, 50*80, c.Total())
}

func TestLedgerRecordsOldestFirst(t *testing.T) {
	l := NewLedger()
	l.Record(models.Order{Ref: "a", Total: 10})
	l.Record(models.Order{Ref: "b", Total: 20})

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Ref)
	assert.Equal(t, "b", all[1].Ref)

	all[0].Total = 999
	assert.Equal(t, 10, l.All()[0].Total)
	assert.Equal(t, 2, l.Len())
}
