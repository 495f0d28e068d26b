package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{code: "USD"},
		{code: "EUR"},
		{code: "INR"},
		{code: "usd", wantErr: true},
		{code: "US", wantErr: true},
		{code: "USDX", wantErr: true},
		{code: "", wantErr: true},
		{code: "U5D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := NewCurrency(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, c.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, c.Code())
			assert.Equal(t, tt.code, c.String())
		})
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("bad") })
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "599.550525", want: "599.55"},
		{in: "0.005", want: "0.01"},
		{in: "0.004", want: "0"},
		{in: "1000", want: "1000"},
		{in: "-0.005", want: "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundCents(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("966.454")
	require.NoError(t, err)
	assert.Equal(t, "966.45", FormatAmount(d))

	_, err = ParseAmount("twelve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000.00", FormatAmount(decimal.NewFromInt(1000)))
	assert.Equal(t, "0.10", FormatAmount(decimal.RequireFromString("0.1")))
}
