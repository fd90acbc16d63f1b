package kernel_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(943)
	require.NoError(t, err)
	assert.Equal(t, int64(943), m.Minor())

	_, err = kernel.NewMoney(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.True(t, kernel.ZeroMoney().IsZero())
	assert.True(t, kernel.Money{}.IsEqual(kernel.ZeroMoney()))
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("quote lines sum to the subtotal", func(t *testing.T) {
		// Given
		burger := kernel.MustMoney(340)
		fries := kernel.MustMoney(180)

		// When
		burgers, err := burger.Multiply(2)
		require.NoError(t, err)
		subtotal, err := kernel.Sum(burgers, fries)
		require.NoError(t, err)

		// Then
		assert.Equal(t, int64(860), subtotal.Minor())
	})

	t.Run("subtract below zero", func(t *testing.T) {
		_, err := kernel.MustMoney(100).Subtract(kernel.MustMoney(101))

		var negative *kernel.NegativeResultError
		require.ErrorAs(t, err, &negative)
		assert.Equal(t, "subtract", negative.Operation)
		require.ErrorIs(t, err, kernel.ErrNegativeResult)
	})

	t.Run("subtract to exactly zero", func(t *testing.T) {
		got, err := kernel.MustMoney(100).Subtract(kernel.MustMoney(100))
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("negative factor", func(t *testing.T) {
		_, err := kernel.MustMoney(100).Multiply(-2)
		require.ErrorIs(t, err, kernel.ErrNegativeResult)
	})

	t.Run("zero factor", func(t *testing.T) {
		got, err := kernel.MustMoney(100).Multiply(0)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}

func TestMoney_PercentageOf(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   string
		want   int64
	}{
		{name: "exact", amount: 860, rate: "5", want: 43},
		{name: "rounds half up", amount: 10, rate: "5", want: 1},
		{name: "rounds down below half", amount: 9, rate: "5", want: 0},
		{name: "fractional rate", amount: 1999, rate: "8.25", want: 165},
		{name: "zero rate", amount: 1999, rate: "0", want: 0},
		{name: "hundred percent", amount: 1999, rate: "100", want: 1999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kernel.MustMoney(tt.amount).PercentageOf(decimal.RequireFromString(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minor())
		})
	}
}

func TestMoney_PercentageOfIsDeterministic(t *testing.T) {
	rate := decimal.RequireFromString("8.25")
	first, err := kernel.MustMoney(123457).PercentageOf(rate)
	require.NoError(t, err)

	for range 1000 {
		again, err := kernel.MustMoney(123457).PercentageOf(rate)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMoney_PercentageOfNegativeRate(t *testing.T) {
	_, err := kernel.MustMoney(100).PercentageOf(decimal.NewFromInt(-5))
	require.ErrorIs(t, err, kernel.ErrNegativeResult)
}

func TestMoney_PercentageOfOverflow(t *testing.T) {
	_, err := kernel.MustMoney(math.MaxInt64).PercentageOf(decimal.NewFromInt(200))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	// the whole of the largest amount is still representable
	got, err := kernel.MustMoney(math.MaxInt64).PercentageOf(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Minor())
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "9.43", kernel.MustMoney(943).String())
	assert.Equal(t, "0.05", kernel.MustMoney(5).String())
	assert.Equal(t, "0.00", kernel.ZeroMoney().String())
}
