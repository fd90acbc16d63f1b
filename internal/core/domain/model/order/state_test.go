package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

func TestNext(t *testing.T) {
	tests := []struct {
		mode order.Mode
		from order.State
		want []order.State
	}{
		{order.Delivery, order.Placed, []order.State{order.Accepted, order.Cancelled}},
		{order.Delivery, order.Ready, []order.State{order.PickedUp, order.Cancelled}},
		{order.Delivery, order.OnTheWay, []order.State{order.Delivered, order.Cancelled}},
		{order.DineIn, order.Placed, []order.State{order.Preparing, order.Cancelled}},
		{order.DineIn, order.Ready, []order.State{order.Served, order.Cancelled}},
		{order.DineIn, order.Served, nil},
		{order.Delivery, order.Cancelled, nil},
		{order.DineIn, order.PickedUp, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+" "+tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, order.Next(tt.mode, tt.from))
		})
	}
}

func TestHasEdge(t *testing.T) {
	assert.True(t, order.HasEdge(order.Delivery, order.PickedUp, order.OnTheWay))
	assert.False(t, order.HasEdge(order.Delivery, order.OnTheWay, order.PickedUp))
	assert.False(t, order.HasEdge(order.DineIn, order.Ready, order.PickedUp))
	assert.True(t, order.HasEdge(order.DineIn, order.Preparing, order.Cancelled))
}

func TestParseState(t *testing.T) {
	for _, mode := range []order.Mode{order.Delivery, order.DineIn} {
		for _, st := range order.Lifecycle(mode) {
			parsed, err := order.ParseState(st.String())
			require.NoError(t, err)
			assert.Equal(t, st, parsed)
		}
	}

	_, err := order.ParseState("BAKING")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cartState, err := order.ParseState("CART")
	require.NoError(t, err)
	require.Error(t, cartState.Validate())
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Served.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
}

func TestPaymentStatus_CanMoveTo(t *testing.T) {
	assert.True(t, order.PaymentPending.CanMoveTo(order.PaymentPaid))
	assert.True(t, order.PaymentPending.CanMoveTo(order.PaymentFailed))
	assert.True(t, order.PaymentPaid.CanMoveTo(order.PaymentRefunded))
	assert.False(t, order.PaymentFailed.CanMoveTo(order.PaymentPaid))
	assert.False(t, order.PaymentPending.CanMoveTo(order.PaymentRefunded))
	assert.False(t, order.PaymentRefunded.CanMoveTo(order.PaymentPaid))
}

func TestParseMode(t *testing.T) {
	mode, err := order.ParseMode("DINE_IN")
	require.NoError(t, err)
	assert.Equal(t, order.DineIn, mode)

	_, err = order.ParseMode("TAKEAWAY")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
