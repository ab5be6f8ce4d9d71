package kiosk

import (
	"testing"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeHours = models.CreditItem{ID: "3h", Icon: "🔥", Hours: "3 Hours", Label: "Popular Choice", Price: 60}

func TestCreditPurchaseCommit(t *testing.T) {
	rec := &recorder{}
	p := NewCreditPurchase("t", threeHours, rec, fixedClock)

	prompt, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, "Choose payment method for 3 Hours (P60):", prompt)
	assert.Equal(t, StateAwaitingPaymentChoice, p.State())

	text, err := p.ChoosePayment("paypal")
	require.NoError(t, err)
	assert.Equal(t, "Confirm purchase?\n\n3 Hours - P60\nPayment: PayPal", text)

	msg, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "3 Hours purchased via PayPal for P60!", msg)
	assert.Equal(t, StateCommitted, p.State())

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventCreditPurchased, events[0].Kind)
	assert.Nil(t, events[0].Order)
	require.NotNil(t, events[0].Credit)
	assert.Equal(t, "3h", events[0].Credit.ID)
	assert.Equal(t, 60, events[0].Amount)
}

func TestCreditPurchaseCancel(t *testing.T) {
	rec := &recorder{}
	p := NewCreditPurchase("t", threeHours, rec, fixedClock)
	_, err := p.Start()
	require.NoError(t, err)
	require.NoError(t, p.Cancel())

	_, err = p.Confirm()
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Empty(t, rec.all())
}

func TestCreditPurchaseNeedsPaymentFirst(t *testing.T) {
	p := NewCreditPurchase("t", threeHours, nil, fixedClock)
	_, err := p.ChoosePayment(models.PaymentGCash)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, _ = p.Start()
	_, err = p.Confirm()
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = p.ChoosePayment("card")
	assert.True(t, apperr.IsValidation(err))
}
