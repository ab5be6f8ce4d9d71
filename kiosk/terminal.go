package kiosk

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

var errCheckoutOpen = fmt.Errorf("finish or cancel the current checkout first: %w", apperr.ErrInvalidTransition)

// Preferences are the checkout details a terminal offers as defaults the
// next time the customer checks out.
type Preferences struct {
	PCNumber       string `json:"pc_number"`
	SpecialRequest string `json:"special_request"`
}

// CheckoutStatus is a read-only view of the terminal's checkout.
type CheckoutStatus struct {
	State   FlowState `json:"state"`
	Summary *Summary  `json:"summary,omitempty"`
}

// Terminal is everything one kiosk screen holds for a signed-in customer
// or guest: cart, order history, remembered checkout details and the
// dialogs in progress. The cart cannot be edited while a checkout is open,
// the same way the checkout dialogs are modal on the kiosk screen.
type Terminal struct {
	key    string
	cart   *Cart
	ledger *Ledger
	notify Notifier
	now    func() time.Time

	mu       sync.Mutex
	prefs    Preferences
	checkout *Checkout
	credit   *CreditPurchase

	lastUsed time.Time // guarded by the owning Registry's mu
}

func NewTerminal(key string, notify Notifier, now func() time.Time) *Terminal {
	if notify == nil {
		notify = discard{}
	}
	if now == nil {
		now = time.Now
	}
	return &Terminal{
		key:    key,
		cart:   NewCart(),
		ledger: NewLedger(),
		notify: notify,
		now:    now,
	}
}

func (t *Terminal) Key() string     { return t.key }
func (t *Terminal) Cart() *Cart     { return t.cart }
func (t *Terminal) Ledger() *Ledger { return t.ledger }

func (t *Terminal) Preferences() Preferences {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prefs
}

func (t *Terminal) checkoutOpen() bool {
	return t.checkout != nil && !t.checkout.State().Done()
}

func (t *Terminal) AddToCart(item models.MenuItem, quantity int) (models.CartLine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkoutOpen() {
		return models.CartLine{}, errCheckoutOpen
	}
	return t.cart.Add(item, quantity)
}

func (t *Terminal) RemoveFromCart(position int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkoutOpen() {
		return errCheckoutOpen
	}
	return t.cart.RemoveAt(position)
}

func (t *Terminal) ClearCart() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkoutOpen() {
		return errCheckoutOpen
	}
	t.cart.Clear()
	return nil
}

// BeginCheckout remembers the details as the new defaults, then starts a
// checkout. The details are kept even when the cart turns out to be empty.
// A checkout still waiting on the customer is abandoned.
func (t *Terminal) BeginCheckout(pcNumber, specialRequest string) (CheckoutStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prefs = Preferences{
		PCNumber:       strings.TrimSpace(pcNumber),
		SpecialRequest: strings.TrimSpace(specialRequest),
	}
	if t.checkoutOpen() {
		_ = t.checkout.Cancel()
	}

	t.checkout = NewCheckout(t.key, t.cart, t.ledger, t.notify, t.now)
	if err := t.checkout.Start(); err != nil {
		return t.checkoutStatus(), err
	}
	if err := t.checkout.SubmitDetails(t.prefs.PCNumber, t.prefs.SpecialRequest); err != nil {
		return t.checkoutStatus(), err
	}
	return t.checkoutStatus(), nil
}

func (t *Terminal) ChooseCheckoutPayment(method models.PaymentMethod) (Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkout == nil {
		return Summary{}, transitionError(StateIdle, "choose payment")
	}
	return t.checkout.ChoosePayment(method)
}

func (t *Terminal) ConfirmCheckout() (models.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkout == nil {
		return models.Order{}, transitionError(StateIdle, "confirm checkout")
	}
	return t.checkout.Confirm()
}

func (t *Terminal) CancelCheckout() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkout == nil {
		return transitionError(StateIdle, "cancel checkout")
	}
	return t.checkout.Cancel()
}

func (t *Terminal) CheckoutStatus() CheckoutStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checkoutStatus()
}

func (t *Terminal) checkoutStatus() CheckoutStatus {
	if t.checkout == nil {
		return CheckoutStatus{State: StateIdle}
	}
	st := CheckoutStatus{State: t.checkout.State()}
	if st.State == StateAwaitingConfirmation || st.State == StateCommitted {
		s := t.checkout.Summary()
		st.Summary = &s
	}
	return st
}

// BeginCreditPurchase starts buying item and returns the payment prompt.
// A credit purchase still waiting on the customer is abandoned.
func (t *Terminal) BeginCreditPurchase(item models.CreditItem) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.credit != nil && !t.credit.State().Done() {
		_ = t.credit.Cancel()
	}
	t.credit = NewCreditPurchase(t.key, item, t.notify, t.now)
	return t.credit.Start()
}

func (t *Terminal) ChooseCreditPayment(method models.PaymentMethod) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.credit == nil {
		return "", transitionError(StateIdle, "choose payment")
	}
	return t.credit.ChoosePayment(method)
}

func (t *Terminal) ConfirmCreditPurchase() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.credit == nil {
		return "", transitionError(StateIdle, "confirm credit purchase")
	}
	return t.credit.Confirm()
}

func (t *Terminal) CancelCreditPurchase() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.credit == nil {
		return transitionError(StateIdle, "cancel credit purchase")
	}
	return t.credit.Cancel()
}

// Registry hands out one Terminal per session key. Terminals not used
// for longer than the idle timeout are forgotten along with their cart
// and history.
type Registry struct {
	notify Notifier
	now    func() time.Time

	mu          sync.Mutex
	terminals   map[string]*Terminal
	idleTimeout time.Duration
	lastSweep   time.Time
}

func NewRegistry(notify Notifier, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		notify:    notify,
		now:       now,
		terminals: make(map[string]*Terminal),
		lastSweep: now(),
	}
}

// SetIdleTimeout enables eviction of terminals idle for longer than d.
// Zero disables it.
func (r *Registry) SetIdleTimeout(d time.Duration) {
	r.mu.Lock()
	r.idleTimeout = d
	r.mu.Unlock()
}

// Get returns the terminal for key, creating it on first use, and marks
// it as used. It also sweeps idle terminals at most once per timeout.
func (r *Registry) Get(key string) *Terminal {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.idleTimeout > 0 && now.Sub(r.lastSweep) >= r.idleTimeout {
		r.evictLocked(now)
	}

	t, ok := r.terminals[key]
	if !ok {
		t = NewTerminal(key, r.notify, r.now)
		r.terminals[key] = t
	}
	t.lastUsed = now
	return t
}

// EvictIdle forgets every terminal idle for longer than the idle timeout
// and returns how many were removed.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idleTimeout <= 0 {
		return 0
	}
	return r.evictLocked(r.now())
}

func (r *Registry) evictLocked(now time.Time) int {
	r.lastSweep = now
	cutoff := now.Add(-r.idleTimeout)
	evicted := 0
	for key, t := range r.terminals {
		if t.lastUsed.Before(cutoff) {
			delete(r.terminals, key)
			evicted++
		}
	}
	return evicted
}

// Len is the number of live terminals.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.terminals)
}

func (r *Registry) Lookup(key string) (*Terminal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminals[key]
	return t, ok
}

// Drop forgets the terminal for key along with its cart and history.
func (r *Registry) Drop(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.terminals[key]
	delete(r.terminals, key)
	return ok
}

// Snapshot lists the live terminals ordered by key.
func (r *Registry) Snapshot() []*Terminal {
	r.mu.Lock()
	out := make([]*Terminal, 0, len(r.terminals))
	for _, t := range r.terminals {
		out = append(out, t)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}
