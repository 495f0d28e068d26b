package valueobject

import "fmt"

// PaymentMethod is how a loan payment was made. It is recorded, never
// computed over.
type PaymentMethod struct {
	value string
}

var (
	PaymentMethodBankTransfer = PaymentMethod{value: "BANK_TRANSFER"}
	PaymentMethodCard         = PaymentMethod{value: "CARD"}
	PaymentMethodCash         = PaymentMethod{value: "CASH"}
	PaymentMethodAutopay      = PaymentMethod{value: "AUTOPAY"}
	PaymentMethodOther        = PaymentMethod{value: "OTHER"}
)

var validPaymentMethods = map[string]PaymentMethod{
	PaymentMethodBankTransfer.value: PaymentMethodBankTransfer,
	PaymentMethodCard.value:         PaymentMethodCard,
	PaymentMethodCash.value:         PaymentMethodCash,
	PaymentMethodAutopay.value:      PaymentMethodAutopay,
	PaymentMethodOther.value:        PaymentMethodOther,
}

// NewPaymentMethod parses s. An empty string means BANK_TRANSFER.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentMethodBankTransfer, nil
	}
	v, ok := validPaymentMethods[s]
	if !ok {
		return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
	}
	return v, nil
}

func (m PaymentMethod) String() string { return m.value }

// PaymentType distinguishes scheduled payments from extra principal and payoffs.
type PaymentType struct {
	value string
}

var (
	PaymentTypeRegular = PaymentType{value: "REGULAR"}
	PaymentTypeExtra   = PaymentType{value: "EXTRA"}
	PaymentTypePayoff  = PaymentType{value: "PAYOFF"}
)

var validPaymentTypes = map[string]PaymentType{
	PaymentTypeRegular.value: PaymentTypeRegular,
	PaymentTypeExtra.value:   PaymentTypeExtra,
	PaymentTypePayoff.value:  PaymentTypePayoff,
}

// NewPaymentType parses s. An empty string means REGULAR.
func NewPaymentType(s string) (PaymentType, error) {
	if s == "" {
		return PaymentTypeRegular, nil
	}
	v, ok := validPaymentTypes[s]
	if !ok {
		return PaymentType{}, fmt.Errorf("invalid payment type: %q", s)
	}
	return v, nil
}

func (t PaymentType) String() string { return t.value }
