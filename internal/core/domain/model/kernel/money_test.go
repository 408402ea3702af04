package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should normalize currency", func(t *testing.T) {
		m, err := kernel.NewMoney(250_000, " eur ")

		require.NoError(t, err)
		assert.Equal(t, int64(250_000), m.Amount())
		assert.Equal(t, "EUR", m.Currency())
		assert.True(t, m.IsPositive())
		assert.NoError(t, m.Validate())
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "USD")

		require.NoError(t, err)
		assert.False(t, m.IsPositive())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "USD")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should reject bad currency codes", func(t *testing.T) {
		for _, code := range []string{"", "US", "USDX", "U$D"} {
			_, err := kernel.NewMoney(100, code)

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
		}
	})

	t.Run("should report both failures", func(t *testing.T) {
		_, err := kernel.NewMoney(-5, "x")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestMoney_Validate(t *testing.T) {
	var zero kernel.Money

	assert.ErrorIs(t, zero.Validate(), kernel.ErrMoneyIsNotConstructed)
}

func TestMoney_Compare(t *testing.T) {
	ten, err := kernel.NewMoney(1000, "EUR")
	require.NoError(t, err)
	five, err := kernel.NewMoney(500, "EUR")
	require.NoError(t, err)
	fiveUSD, err := kernel.NewMoney(500, "USD")
	require.NoError(t, err)

	t.Run("IsEqual", func(t *testing.T) {
		other, err := kernel.NewMoney(1000, "eur")
		require.NoError(t, err)

		eq, err := ten.IsEqual(other)
		require.NoError(t, err)
		assert.True(t, eq)

		eq, err = five.IsEqual(fiveUSD)
		require.NoError(t, err)
		assert.False(t, eq)

		_, err = ten.IsEqual(kernel.Money{})
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})

	t.Run("Exceeds", func(t *testing.T) {
		gt, err := ten.Exceeds(five)
		require.NoError(t, err)
		assert.True(t, gt)

		gt, err = five.Exceeds(ten)
		require.NoError(t, err)
		assert.False(t, gt)

		_, err = five.Exceeds(fiveUSD)
		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})
}

func TestMoney_String(t *testing.T) {
	m, err := kernel.NewMoney(250_005, "EUR")
	require.NoError(t, err)

	assert.Equal(t, "2500.05 EUR", m.String())
}
