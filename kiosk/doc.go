// Package kiosk implements the ordering side of the kiosk: carts, the
// in-memory order ledger, the checkout and credit purchase dialogs as
// explicit state machines, and the per-session terminals that tie them
// together.
package kiosk
