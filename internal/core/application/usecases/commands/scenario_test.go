package commands_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

// Kitchen and partner race on the same delivery order.
func TestRequestTransition_KitchenAndPartnerRace(t *testing.T) {
	// Given an assigned delivery order in PREPARING
	placed, people := placeOrder(t, order.Delivery)
	preparing := walk(t, assignTo(t, placed, people.partner.ID()), order.Accepted, order.Preparing)
	store := newMemoryStore(preparing)
	metrics := newMetricsSpy()
	handler := commands.NewRequestTransitionCommandHandler(store, metrics, silent)
	read := preparing.Version()

	// When the kitchen marks READY with the version it read
	ready, err := commands.NewRequestTransitionCommand(placed.ID(), read, order.Ready, people.staff)
	require.NoError(t, err)
	readyOrder, err := handler.Handle(t.Context(), ready)
	require.NoError(t, err)
	assert.Equal(t, read+1, readyOrder.Version())

	// And the partner submits PICKED_UP with an older read
	pickup, err := commands.NewRequestTransitionCommand(placed.ID(), read-1, order.PickedUp, people.partner)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), pickup)

	// Then the partner sees a stale error carrying the current version
	var stale *order.StaleOrderError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, readyOrder.Version(), stale.Actual)
	assert.Equal(t, 1, metrics.count("stale:transition"))

	// And a retry with the fresh version succeeds
	retry, err := commands.NewRequestTransitionCommand(placed.ID(), stale.Actual, order.PickedUp, people.partner)
	require.NoError(t, err)
	picked, err := handler.Handle(t.Context(), retry)
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, picked.State())
}

func TestRequestTransition_SilentRetryUsesFreshVersion(t *testing.T) {
	placed, people := placeOrder(t, order.Delivery)
	ready := walk(t, assignTo(t, placed, people.partner.ID()), order.Accepted, order.Preparing, order.Ready)
	store := newMemoryStore(ready)
	handler := commands.NewRequestTransitionCommandHandler(store, newMetricsSpy(), silent)

	cmd, err := commands.NewRequestTransitionCommand(placed.ID(), 1, order.PickedUp, people.partner)
	require.NoError(t, err)

	picked, err := handler.Handle(t.Context(), cmd.WithSilentRetry())

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, picked.State())
	assert.Equal(t, ready.Version()+1, picked.Version())
}

func TestRequestTransition_SilentRetryRecordsDenialOnce(t *testing.T) {
	placed, people := placeOrder(t, order.Delivery)
	store := newMemoryStore(placed)
	metrics := newMetricsSpy()
	handler := commands.NewRequestTransitionCommandHandler(store, metrics, silent)

	// the partner is not assigned, so the re-read changes nothing
	cmd, err := commands.NewRequestTransitionCommand(placed.ID(), 1, order.Accepted, people.partner)
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd.WithSilentRetry())

	require.ErrorIs(t, err, order.ErrUnauthorizedTransition)
	assert.Equal(t, 1, metrics.count("unauthorized"))
}

func TestRequestTransition_ConcurrentWritersExactlyOneStale(t *testing.T) {
	placed, people := placeOrder(t, order.Delivery)
	accepted := walk(t, placed, order.Accepted)
	store := newMemoryStore(accepted)
	handler := commands.NewRequestTransitionCommandHandler(store, newMetricsSpy(), silent)

	prepare, err := commands.NewRequestTransitionCommand(placed.ID(), accepted.Version(), order.Preparing, people.staff)
	require.NoError(t, err)
	cancel, err := commands.NewRequestTransitionCommand(placed.ID(), accepted.Version(), order.Cancelled, people.customer)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i, cmd := range []commands.RequestTransitionCommand{prepare, cancel} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	stale := 0
	for _, err := range errs {
		if errors.Is(err, order.ErrStaleOrder) {
			stale++
			continue
		}
		require.NoError(t, err)
	}
	assert.Equal(t, 1, stale)
}

// A customer may cancel before preparation but not after.
func TestRequestTransition_CustomerCancelWindow(t *testing.T) {
	placed, people := placeOrder(t, order.Delivery)
	preparing := walk(t, placed, order.Accepted, order.Preparing)
	store := newMemoryStore(preparing)
	handler := commands.NewRequestTransitionCommandHandler(store, newMetricsSpy(), silent)

	cmd, err := commands.NewRequestTransitionCommand(placed.ID(), preparing.Version(), order.Cancelled, people.customer)
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	stored, err := store.Create().OrderRepository().Get(t.Context(), placed.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Preparing, stored.State())
	assert.Equal(t, preparing.Version(), stored.Version())
}

// Payment recorded while the kitchen moves the order: both writes land.
func TestRecordPayment_RetriesAfterLosingTheRace(t *testing.T) {
	placed, people := placeOrder(t, order.Delivery)
	store := newMemoryStore(placed)
	metrics := newMetricsSpy()
	transitions := commands.NewRequestTransitionCommandHandler(store, metrics, silent)
	payments := commands.NewRecordPaymentCommandHandler(store, metrics, silent)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cmd, err := commands.NewRequestTransitionCommand(placed.ID(), 1, order.Accepted, people.staff)
		assert.NoError(t, err)
		_, err = transitions.Handle(t.Context(), cmd.WithSilentRetry())
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		cmd, err := commands.NewRecordPaymentCommand(placed.ID(), order.PaymentPaid, payment.Cash, "")
		assert.NoError(t, err)
		_, err = payments.Handle(t.Context(), cmd)
		assert.NoError(t, err)
	}()
	wg.Wait()

	stored, err := store.Create().OrderRepository().Get(t.Context(), placed.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, stored.State())
	assert.Equal(t, order.PaymentPaid, stored.PaymentStatus())
	assert.Equal(t, int64(3), stored.Version())

	entries, err := store.Create().PaymentRepository().ListByOrder(t.Context(), placed.ID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, payment.KindPayment, entries[0].Kind())
}
