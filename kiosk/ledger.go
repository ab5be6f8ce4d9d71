package kiosk

import (
	"sync"

	"github.com/junaidrashid-git/cybereatdiri/models"
)

// Ledger is the append-only order history of one terminal. It lives in
// memory only.
type Ledger struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends order. Orders are not validated here; checkout builds them.
func (l *Ledger) Record(order models.Order) {
	l.mu.Lock()
	l.orders = append(l.orders, order)
	l.mu.Unlock()
}

// All returns every recorded order, oldest first.
func (l *Ledger) All() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
