package kiosk

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

// ErrEmptyCart is returned when checkout is started on an empty cart.
var ErrEmptyCart = apperr.Validation("Your cart is empty.")

var errChoosePayment = apperr.Validation("Choose GCash, PayPal or Cash on Hand.")

const noSpecialRequest = "(none)"

// Summary is what the customer confirms before paying.
type Summary struct {
	PCNumber       string               `json:"pc_number"`
	SpecialRequest string               `json:"special_request"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	Items          []string             `json:"items"`
	ItemCount      int                  `json:"item_count"`
	Total          int                  `json:"total"`
}

// Text renders the summary the way the confirmation dialog shows it.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC Number: %s\n", s.PCNumber)
	fmt.Fprintf(&b, "Special Request: %s\n", s.SpecialRequest)
	fmt.Fprintf(&b, "Payment: %s\n\n", s.PaymentMethod)
	b.WriteString("Items:\n")
	for _, item := range s.Items {
		b.WriteString(item)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nTOTAL: P%d\n\nConfirm purchase?", s.Total)
	return b.String()
}

func summaryLine(l models.CartLine) string {
	return fmt.Sprintf("%s x%d = P%d", l.Name, l.Quantity, l.LineTotal())
}

// Checkout walks one cart through details, payment choice and
// confirmation. A Checkout is single use and not safe for concurrent use;
// Terminal serializes access to it.
type Checkout struct {
	terminal string
	cart     *Cart
	ledger   *Ledger
	notify   Notifier
	now      func() time.Time

	state          FlowState
	pcNumber       string
	specialRequest string
	summary        Summary
	order          models.Order
}

func NewCheckout(terminal string, cart *Cart, ledger *Ledger, notify Notifier, now func() time.Time) *Checkout {
	if notify == nil {
		notify = discard{}
	}
	if now == nil {
		now = time.Now
	}
	return &Checkout{
		terminal: terminal,
		cart:     cart,
		ledger:   ledger,
		notify:   notify,
		now:      now,
	}
}

func (c *Checkout) State() FlowState { return c.state }

// Summary is populated once a payment method has been chosen.
func (c *Checkout) Summary() Summary { return c.summary }

// Order is populated once the checkout is committed.
func (c *Checkout) Order() models.Order { return c.order }

// Start opens the details step. An empty cart cancels the flow.
func (c *Checkout) Start() error {
	if c.state != StateIdle {
		return transitionError(c.state, "start checkout")
	}
	if c.cart.Len() == 0 {
		c.state = StateCancelled
		return ErrEmptyCart
	}
	c.state = StateCollectingDetails
	return nil
}

// SubmitDetails records the PC number and special request. Both may be empty.
func (c *Checkout) SubmitDetails(pcNumber, specialRequest string) error {
	if c.state != StateCollectingDetails {
		return transitionError(c.state, "submit details")
	}
	c.pcNumber = strings.TrimSpace(pcNumber)
	c.specialRequest = strings.TrimSpace(specialRequest)
	c.state = StateAwaitingPaymentChoice
	return nil
}

// ChoosePayment fixes the payment method and builds the summary to confirm.
func (c *Checkout) ChoosePayment(method models.PaymentMethod) (Summary, error) {
	if c.state != StateAwaitingPaymentChoice {
		return Summary{}, transitionError(c.state, "choose payment")
	}
	method, err := models.ParsePaymentMethod(string(method))
	if err != nil {
		return Summary{}, errChoosePayment
	}

	lines := c.cart.Lines()
	s := Summary{
		PCNumber:       c.pcNumber,
		SpecialRequest: c.specialRequest,
		PaymentMethod:  method,
		Total:          total(lines),
		ItemCount:      itemCount(lines),
	}
	if s.PCNumber == "" {
		s.PCNumber = models.PCNotSpecified
	}
	if s.SpecialRequest == "" {
		s.SpecialRequest = noSpecialRequest
	}
	for _, l := range lines {
		s.Items = append(s.Items, summaryLine(l))
	}

	c.summary = s
	c.state = StateAwaitingConfirmation
	return s, nil
}

// Confirm records the order and empties the cart as one step, then
// announces the purchase.
func (c *Checkout) Confirm() (models.Order, error) {
	if c.state != StateAwaitingConfirmation {
		return models.Order{}, transitionError(c.state, "confirm checkout")
	}

	err := c.cart.Commit(func(lines []models.CartLine, sum int) error {
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		items := make([]string, 0, len(lines))
		for _, l := range lines {
			items = append(items, summaryLine(l))
		}
		at := c.now()
		c.order = models.Order{
			Ref:           at.Format("20060102150405") + "-" + uuid.NewString(),
			Time:          at.Format(models.OrderTimeLayout),
			ItemsSummary:  strings.Join(items, "\n"),
			Total:         sum,
			ItemCount:     itemCount(lines),
			PCNumber:      c.summary.PCNumber,
			PaymentMethod: c.summary.PaymentMethod,
		}
		c.ledger.Record(c.order)
		return nil
	})
	if err != nil {
		c.state = StateCancelled
		return models.Order{}, err
	}
	c.state = StateCommitted

	order := c.order
	c.notify.Notify(Event{
		Kind:          EventOrderCommitted,
		Terminal:      c.terminal,
		Message:       OrderMessage(order),
		PaymentMethod: order.PaymentMethod,
		Amount:        order.Total,
		ItemCount:     order.ItemCount,
		Order:         &order,
		At:            c.now(),
	})
	return order, nil
}

// OrderMessage is the notice shown after a successful checkout.
func OrderMessage(order models.Order) string {
	return fmt.Sprintf("Purchase confirmed! %d items for P%d.", order.ItemCount, order.Total)
}

// Cancel abandons the flow. The cart and ledger are left untouched.
func (c *Checkout) Cancel() error {
	if c.state.Done() {
		return transitionError(c.state, "cancel checkout")
	}
	c.state = StateCancelled
	return nil
}
