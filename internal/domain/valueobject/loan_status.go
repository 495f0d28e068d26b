package valueobject

import "fmt"

// LoanStatus is the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive  = "ACTIVE"
	loanStatusPaidOff = "PAID_OFF"
)

var (
	LoanStatusActive  = LoanStatus{value: loanStatusActive}
	LoanStatusPaidOff = LoanStatus{value: loanStatusPaidOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:  LoanStatusActive,
	loanStatusPaidOff: LoanStatusPaidOff,
}

// NewLoanStatus parses a stored status.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }
