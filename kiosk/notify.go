package kiosk

import (
	"time"

	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/sirupsen/logrus"
)

type EventKind string

const (
	EventOrderCommitted  EventKind = "order_committed"
	EventCreditPurchased EventKind = "credit_purchased"
)

// Event describes a completed purchase. Order is set for checkouts and
// Credit for credit purchases.
type Event struct {
	Kind          EventKind            `json:"kind"`
	Terminal      string               `json:"terminal"`
	Message       string               `json:"message"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Amount        int                  `json:"amount"`
	ItemCount     int                  `json:"item_count"`
	Order         *models.Order        `json:"order,omitempty"`
	Credit        *models.CreditItem   `json:"credit,omitempty"`
	At            time.Time            `json:"at"`
}

// Notifier receives purchase events. Implementations must not block for
// long; they are called right after a commit.
type Notifier interface {
	Notify(Event)
}

// Notifiers fans an event out to each notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

type discard struct{}

func (discard) Notify(Event) {}

// LogNotifier writes purchase events to a logrus logger.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (n LogNotifier) Notify(ev Event) {
	n.Log.WithFields(logrus.Fields{
		"kind":     ev.Kind,
		"terminal": ev.Terminal,
		"amount":   ev.Amount,
		"items":    ev.ItemCount,
		"payment":  ev.PaymentMethod,
	}).Info(ev.Message)
}
