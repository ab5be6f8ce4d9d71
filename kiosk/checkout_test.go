package kiosk

import (
	"sync"
	"testing"
	"time"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 18, 30, 5, 0, time.UTC)
}

func filledCart(t *testing.T) *Cart {
	t.Helper()
	c := NewCart()
	_, err := c.Add(pizza, 1)
	require.NoError(t, err)
	_, err = c.Add(fries, 2)
	require.NoError(t, err)
	return c
}

func TestCheckoutCommit(t *testing.T) {
	cart := filledCart(t)
	ledger := NewLedger()
	rec := &recorder{}
	co := NewCheckout("pc-7", cart, ledger, rec, fixedClock)

	require.NoError(t, co.Start())
	assert.Equal(t, StateCollectingDetails, co.State())
	require.NoError(t, co.SubmitDetails(" 12 ", "no onions"))
	assert.Equal(t, StateAwaitingPaymentChoice, co.State())

	summary, err := co.ChoosePayment(models.PaymentGCash)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, co.State())
	assert.Equal(t, "12", summary.PCNumber)
	assert.Equal(t, []string{"Pizza x1 = P180", "Fries x2 = P160"}, summary.Items)
	assert.Equal(t, 340, summary.Total)

	order, err := co.Confirm()
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, co.State())

	assert.Equal(t, 340, order.Total)
	assert.Equal(t, 3, order.ItemCount)
	assert.Equal(t, "Pizza x1 = P180\nFries x2 = P160", order.ItemsSummary)
	assert.Equal(t, "2025-03-14 18:30", order.Time)
	assert.Equal(t, "12", order.PCNumber)
	assert.Equal(t, models.PaymentGCash, order.PaymentMethod)
	assert.Contains(t, order.Ref, "20250314183005-")

	assert.Equal(t, 0, cart.Len())
	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, order, ledger.All()[0])

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCommitted, events[0].Kind)
	assert.Equal(t, "Purchase confirmed! 3 items for P340.", events[0].Message)
	assert.Equal(t, "pc-7", events[0].Terminal)
}

func TestCheckoutEmptyCartIsRejectedBeforePayment(t *testing.T) {
	ledger := NewLedger()
	co := NewCheckout("t", NewCart(), ledger, nil, fixedClock)

	err := co.Start()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, StateCancelled, co.State())

	_, err = co.ChoosePayment(models.PaymentPayPal)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Equal(t, 0, ledger.Len())
}

func TestCheckoutSummaryDefaults(t *testing.T) {
	co := NewCheckout("t", filledCart(t), NewLedger(), nil, fixedClock)
	require.NoError(t, co.Start())
	require.NoError(t, co.SubmitDetails("", "   "))

	summary, err := co.ChoosePayment("cash on hand")
	require.NoError(t, err)
	assert.Equal(t, models.PCNotSpecified, summary.PCNumber)
	assert.Equal(t, "(none)", summary.SpecialRequest)
	assert.Equal(t, models.PaymentCashOnHand, summary.PaymentMethod)

	want := "PC Number: Not specified\n" +
		"Special Request: (none)\n" +
		"Payment: Cash on Hand\n\n" +
		"Items:\n" +
		"Pizza x1 = P180\n" +
		"Fries x2 = P160\n" +
		"\nTOTAL: P340\n\nConfirm purchase?"
	assert.Equal(t, want, summary.Text())

	order, err := co.Confirm()
	require.NoError(t, err)
	assert.Equal(t, models.PCNotSpecified, order.PCNumber)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	co := NewCheckout("t", filledCart(t), NewLedger(), nil, fixedClock)
	require.NoError(t, co.Start())
	require.NoError(t, co.SubmitDetails("", ""))

	_, err := co.ChoosePayment("Bitcoin")
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, StateAwaitingPaymentChoice, co.State())
}

func TestCheckoutCancelLeavesCartAndLedgerUntouched(t *testing.T) {
	for _, step := range []string{"payment", "confirmation"} {
		t.Run(step, func(t *testing.T) {
			cart := filledCart(t)
			ledger := NewLedger()
			rec := &recorder{}
			before := cart.Lines()

			co := NewCheckout("t", cart, ledger, rec, fixedClock)
			require.NoError(t, co.Start())
			require.NoError(t, co.SubmitDetails("3", ""))
			if step == "confirmation" {
				_, err := co.ChoosePayment(models.PaymentPayPal)
				require.NoError(t, err)
			}
			require.NoError(t, co.Cancel())

			assert.Equal(t, StateCancelled, co.State())
			assert.Equal(t, before, cart.Lines())
			assert.Equal(t, 0, ledger.Len())
			assert.Empty(t, rec.all())

			_, err := co.Confirm()
			assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
			assert.Error(t, co.Cancel())
		})
	}
}

func TestCheckoutOutOfOrderSteps(t *testing.T) {
	co := NewCheckout("t", filledCart(t), NewLedger(), nil, fixedClock)

	assert.ErrorIs(t, co.SubmitDetails("1", ""), apperr.ErrInvalidTransition)
	_, err := co.Confirm()
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	require.NoError(t, co.Start())
	assert.ErrorIs(t, co.Start(), apperr.ErrInvalidTransition)
}

func TestCheckoutConfirmOnCartEmptiedMeanwhile(t *testing.T) {
	cart := filledCart(t)
	ledger := NewLedger()
	co := NewCheckout("t", cart, ledger, nil, fixedClock)
	require.NoError(t, co.Start())
	require.NoError(t, co.SubmitDetails("", ""))
	_, err := co.ChoosePayment(models.PaymentGCash)
	require.NoError(t, err)

	cart.Clear()
	_, err = co.Confirm()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateCancelled, co.State())
	assert.Equal(t, 0, ledger.Len())
}

func TestFlowStateText(t *testing.T) {
	text, err := StateAwaitingPaymentChoice.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "awaiting_payment_choice", string(text))
	assert.Equal(t, "FlowState(42)", FlowState(42).String())
	assert.True(t, StateCommitted.Done())
	assert.False(t, StateIdle.Done())
}
