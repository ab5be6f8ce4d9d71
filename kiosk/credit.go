package kiosk

import (
	"fmt"
	"time"

	"github.com/junaidrashid-git/cybereatdiri/models"
)

// CreditPurchase buys one credit pack. Unlike Checkout it never touches
// the cart or the ledger; the only effect of a commit is the notification.
type CreditPurchase struct {
	terminal string
	item     models.CreditItem
	notify   Notifier
	now      func() time.Time

	state  FlowState
	method models.PaymentMethod
}

func NewCreditPurchase(terminal string, item models.CreditItem, notify Notifier, now func() time.Time) *CreditPurchase {
	if notify == nil {
		notify = discard{}
	}
	if now == nil {
		now = time.Now
	}
	return &CreditPurchase{terminal: terminal, item: item, notify: notify, now: now}
}

func (p *CreditPurchase) State() FlowState { return p.state }

func (p *CreditPurchase) Item() models.CreditItem { return p.item }

func (p *CreditPurchase) PaymentMethod() models.PaymentMethod { return p.method }

// Start moves straight to the payment choice and returns its prompt.
func (p *CreditPurchase) Start() (string, error) {
	if p.state != StateIdle {
		return "", transitionError(p.state, "start credit purchase")
	}
	p.state = StateAwaitingPaymentChoice
	return p.Prompt(), nil
}

func (p *CreditPurchase) Prompt() string {
	return fmt.Sprintf("Choose payment method for %s (P%d):", p.item.Hours, p.item.Price)
}

// ChoosePayment fixes the method and returns the confirmation text.
func (p *CreditPurchase) ChoosePayment(method models.PaymentMethod) (string, error) {
	if p.state != StateAwaitingPaymentChoice {
		return "", transitionError(p.state, "choose payment")
	}
	method, err := models.ParsePaymentMethod(string(method))
	if err != nil {
		return "", errChoosePayment
	}
	p.method = method
	p.state = StateAwaitingConfirmation
	return p.ConfirmationText(), nil
}

func (p *CreditPurchase) ConfirmationText() string {
	return fmt.Sprintf("Confirm purchase?\n\n%s - P%d\nPayment: %s", p.item.Hours, p.item.Price, p.method)
}

// Confirm completes the purchase and returns the success message.
func (p *CreditPurchase) Confirm() (string, error) {
	if p.state != StateAwaitingConfirmation {
		return "", transitionError(p.state, "confirm credit purchase")
	}
	p.state = StateCommitted

	msg := fmt.Sprintf("%s purchased via %s for P%d!", p.item.Hours, p.method, p.item.Price)
	item := p.item
	p.notify.Notify(Event{
		Kind:          EventCreditPurchased,
		Terminal:      p.terminal,
		Message:       msg,
		PaymentMethod: p.method,
		Amount:        item.Price,
		ItemCount:     1,
		Credit:        &item,
		At:            p.now(),
	})
	return msg, nil
}

func (p *CreditPurchase) Cancel() error {
	if p.state.Done() {
		return transitionError(p.state, "cancel credit purchase")
	}
	p.state = StateCancelled
	return nil
}
