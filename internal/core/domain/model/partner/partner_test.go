package partner_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registeredAt = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func TestNewPartner(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should register an active partner", func(t *testing.T) {
		p, err := partner.NewPartner(validID, "Budi", registeredAt)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(validID))
		assert.Equal(t, "Budi", p.Name())
		assert.True(t, p.IsActive())
		assert.Equal(t, registeredAt, p.RegisteredAt())
	})

	t.Run("should aggregate every invalid field", func(t *testing.T) {
		p, err := partner.NewPartner(kernel.UUID{}, " ", time.Time{})

		require.Error(t, err)
		assert.Nil(t, p)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, partner.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPartner_CanTakeOrders(t *testing.T) {
	p, err := partner.NewPartner(kernel.NewUUID(), "Sari", registeredAt)
	require.NoError(t, err)
	require.NoError(t, p.CanTakeOrders())

	p.Deactivate()

	require.ErrorIs(t, p.CanTakeOrders(), partner.ErrPartnerIsInactive)

	var zero *partner.Partner
	require.ErrorIs(t, zero.CanTakeOrders(), partner.ErrPartnerIsNotConstructed)
}

func TestRestorePartner(t *testing.T) {
	id := kernel.NewUUID()
	p, err := partner.RestorePartner(id, "Sari", false, registeredAt)

	require.NoError(t, err)
	assert.False(t, p.IsActive())

	same, err := partner.RestorePartner(id, "Sari (renamed)", true, registeredAt)
	require.NoError(t, err)
	assert.True(t, p.IsEqual(same))
	assert.False(t, p.IsEqual(nil))
}

func TestFeeSchedule(t *testing.T) {
	t.Run("fixed fee ignores distance", func(t *testing.T) {
		s := partner.NewFixedFeeSchedule(kernel.MustMoney(120))

		for _, d := range []int{0, 5, 5000} {
			fee, err := s.FeeFor(d)
			require.NoError(t, err)
			assert.Equal(t, int64(120), fee.Minor())
		}
		assert.Empty(t, s.Tiers())
	})

	t.Run("tiers are matched by distance", func(t *testing.T) {
		s, err := partner.NewTieredFeeSchedule([]partner.FeeTier{
			{UpTo: 25, Fee: kernel.MustMoney(150)},
			{UpTo: 10, Fee: kernel.MustMoney(100)},
		})
		require.NoError(t, err)

		tests := []struct {
			distance int
			want     int64
		}{
			{0, 100}, {10, 100}, {11, 150}, {25, 150}, {400, 150},
		}
		for _, tt := range tests {
			fee, err := s.FeeFor(tt.distance)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee.Minor(), "distance %d", tt.distance)
		}
		assert.Equal(t, 10, s.Tiers()[0].UpTo)
	})

	t.Run("duplicate tier bound", func(t *testing.T) {
		_, err := partner.NewTieredFeeSchedule([]partner.FeeTier{
			{UpTo: 10, Fee: kernel.MustMoney(100)},
			{UpTo: 10, Fee: kernel.MustMoney(150)},
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("no tiers", func(t *testing.T) {
		_, err := partner.NewTieredFeeSchedule(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = partner.FeeSchedule{}.FeeFor(3)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative distance", func(t *testing.T) {
		_, err := partner.NewFixedFeeSchedule(kernel.MustMoney(1)).FeeFor(-1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewBonusEvent(t *testing.T) {
	partnerID := kernel.NewUUID()

	b, err := partner.NewBonusEvent(partnerID, kernel.MustMoney(5000), "weekend peak", registeredAt)
	require.NoError(t, err)
	require.NoError(t, b.Validate())
	assert.True(t, b.PartnerID().IsEqual(partnerID))
	assert.Equal(t, "weekend peak", b.Reason())

	_, err = partner.NewBonusEvent(partnerID, kernel.ZeroMoney(), "", time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
