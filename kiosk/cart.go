package kiosk

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

// Cart is an ordered list of lines. It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
	newID func() string
}

func NewCart() *Cart {
	return &Cart{newID: uuid.NewString}
}

// Add appends a new line for item. Re-adding an item already in the cart
// creates a second line rather than bumping the first one's quantity.
func (c *Cart) Add(item models.MenuItem, quantity int) (models.CartLine, error) {
	if quantity < 1 {
		return models.CartLine{}, apperr.Validation("Quantity must be at least 1.")
	}
	line := models.CartLine{
		ID:        c.newID(),
		Icon:      item.Icon,
		Name:      item.Name,
		ImagePath: item.ImagePath,
		UnitPrice: item.Price,
		Quantity:  quantity,
	}

	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()
	return line, nil
}

// RemoveAt deletes the line at position (0-based).
func (c *Cart) RemoveAt(position int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if position < 0 || position >= len(c.lines) {
		return fmt.Errorf("remove line %d of %d: %w", position, len(c.lines), apperr.ErrOutOfRange)
	}
	c.lines = append(c.lines[:position:position], c.lines[position+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func (c *Cart) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// ItemCount is the sum of quantities, which is what the cart badge shows.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return itemCount(c.lines)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Commit runs fn with the cart locked and empties the cart when fn
// returns nil. Nothing can be added or removed while fn runs.
func (c *Cart) Commit(fn func(lines []models.CartLine, total int) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := append([]models.CartLine(nil), c.lines...)
	if err := fn(lines, total(lines)); err != nil {
		return err
	}
	c.lines = nil
	return nil
}

func total(lines []models.CartLine) int {
	sum := 0
	for _, l := range lines {
		sum += l.LineTotal()
	}
	return sum
}

func itemCount(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
