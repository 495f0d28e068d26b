package testutil

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimal checks that got equals the decimal literal want,
// ignoring trailing zeros.
func AssertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	if decimal.RequireFromString(want).Equal(got) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("decimal mismatch: want %s, got %s", want, got.String()), msgAndArgs...)
}
