package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
)

// PaymentSplit is the interest/principal breakdown of one payment.
type PaymentSplit struct {
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
	NewBalance       decimal.Decimal
}

// SplitPayment applies amount to balance at the given annual rate: one
// month of interest is taken first and the rest reduces principal. The new
// balance never goes below zero.
func SplitPayment(balance, annualRatePercent, amount decimal.Decimal) PaymentSplit {
	interest := money.RoundCents(balance.Mul(MonthlyRate(annualRatePercent)))
	principal := money.RoundCents(amount).Sub(interest)
	newBalance := money.RoundCents(balance).Sub(principal)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	return PaymentSplit{
		InterestPortion:  interest,
		PrincipalPortion: principal,
		NewBalance:       newBalance,
	}
}

// PaymentInput describes a payment made against a loan. Date, method and
// type are recorded as given.
type PaymentInput struct {
	PaymentDate time.Time
	Amount      decimal.Decimal
	Method      valueobject.PaymentMethod
	Type        valueobject.PaymentType
}

// LoanPayment is the stored record of an applied payment.
type LoanPayment struct {
	PaymentDate      time.Time
	CreatedAt        time.Time
	ID               string
	LoanID           string
	Amount           decimal.Decimal
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
	BalanceAfter     decimal.Decimal
	Method           valueobject.PaymentMethod
	Type             valueobject.PaymentType
	// PaymentNumber is the schedule entry the payment settled, 0 if none.
	PaymentNumber int
}
