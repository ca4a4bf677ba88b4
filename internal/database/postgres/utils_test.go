package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

func TestParseUserUUID(t *testing.T) {
	t.Run("valid uuid round-trips", func(t *testing.T) {
		u, err := parseUserUUID("9f1c2a34-1111-4222-8333-444455556666")
		require.NoError(t, err)
		assert.Equal(t, "9f1c2a34-1111-4222-8333-444455556666", u.String())
	})

	t.Run("malformed id is a validation error", func(t *testing.T) {
		// Must carry ErrInvalidInput so the handler layer maps it to a
		// 4xx instead of a generic server error.
		_, err := parseUserUUID("not-a-uuid")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty id is a validation error", func(t *testing.T) {
		_, err := parseUserUUID("")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCurrencyColumn(t *testing.T) {
	cases := []struct {
		currency domain.Currency
		column   string
	}{
		{domain.CurrencyCopper, "copper"},
		{domain.CurrencySilver, "silver"},
		{domain.CurrencyGold, "gold"},
		{domain.CurrencySpiritStones, "spirit_stones"},
	}
	for _, tc := range cases {
		col, err := currencyColumn(tc.currency)
		require.NoError(t, err)
		assert.Equal(t, tc.column, col)
	}

	_, err := currencyColumn(domain.Currency("jade"))
	assert.Error(t, err)
}
