package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("ADMIN").IsAdmin())
}

func TestUserCanAccess(t *testing.T) {
	owner := &User{ID: 1, Role: RoleUser}
	other := &User{ID: 2, Role: RoleUser}
	admin := &User{ID: 3, Role: RoleAdmin}

	assert.True(t, owner.CanAccess(1))
	assert.False(t, other.CanAccess(1))
	assert.True(t, admin.CanAccess(1))
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingCancelled, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
	assert.False(t, BookingStatus("archived").Valid())
}

func TestTransactionTypeDelta(t *testing.T) {
	amount := decimal.NewFromInt(40)

	assert.True(t, TxDeposit.Delta(amount).Equal(amount))
	assert.True(t, TxTransferIn.Delta(amount).Equal(amount))
	assert.True(t, TxTransferOut.Delta(amount).Equal(decimal.NewFromInt(-40)))
	assert.True(t, TxPayment.Delta(amount).IsZero())
}

func TestTransactionStatus(t *testing.T) {
	assert.False(t, TxPending.Terminal())
	assert.True(t, TxCompleted.Terminal())
	assert.True(t, TxFailed.Terminal())
	assert.True(t, TxCancelled.Terminal())
	assert.False(t, TransactionStatus("refunded").Valid())
}
