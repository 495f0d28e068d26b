package grpc

// Wire messages for LoanService. Money and rates are decimal strings, dates
// are YYYY-MM-DD and timestamps RFC 3339.

type Loan struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	Principal       string `json:"principal"`
	CurrentBalance  string `json:"current_balance"`
	InterestRate    string `json:"interest_rate"`
	MonthlyPayment  string `json:"monthly_payment"`
	StartDate       string `json:"start_date"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	TermMonths      int32  `json:"term_months"`
	RemainingMonths int32  `json:"remaining_months"`
	ScheduleVersion int32  `json:"schedule_version"`
}

type ScheduleEntry struct {
	PaymentDate      string `json:"payment_date"`
	PaymentAmount    string `json:"payment_amount"`
	PrincipalAmount  string `json:"principal_amount"`
	InterestAmount   string `json:"interest_amount"`
	RemainingBalance string `json:"remaining_balance"`
	PaymentNumber    int32  `json:"payment_number"`
	IsPaid           bool   `json:"is_paid"`
}

type RefinanceAnalysis struct {
	ID                  string `json:"id"`
	LoanID              string `json:"loan_id"`
	AnalysisDate        string `json:"analysis_date"`
	CurrentRate         string `json:"current_rate"`
	NewRate             string `json:"new_rate"`
	ClosingCosts        string `json:"closing_costs"`
	CurrentPayment      string `json:"current_payment"`
	NewPayment          string `json:"new_payment"`
	CurrentPathInterest string `json:"current_path_interest"`
	NewPathInterest     string `json:"new_path_interest"`
	MonthlySavings      string `json:"monthly_savings"`
	LifetimeSavings     string `json:"lifetime_savings"`
	RemainingMonths     int32  `json:"remaining_months"`
	BreakEvenMonths     int32  `json:"break_even_months"`
	IsRecommended       bool   `json:"is_recommended"`
}

type Payment struct {
	ID               string `json:"id"`
	PaymentDate      string `json:"payment_date"`
	CreatedAt        string `json:"created_at"`
	Method           string `json:"method"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	InterestPortion  string `json:"interest_portion"`
	PrincipalPortion string `json:"principal_portion"`
	BalanceAfter     string `json:"balance_after"`
	PaymentNumber    int32  `json:"payment_number"`
}

type CreateLoanRequest struct {
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	Principal  string `json:"principal"`
	AnnualRate string `json:"annual_rate"`
	StartDate  string `json:"start_date"`
	TermMonths int32  `json:"term_months"`
}

type CreateLoanResponse struct {
	Loan *Loan `json:"loan"`
}

type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

type GetLoanResponse struct {
	Loan *Loan `json:"loan"`
}

type GenerateScheduleRequest struct {
	LoanID     string `json:"loan_id"`
	Principal  string `json:"principal"`
	AnnualRate string `json:"annual_rate"`
	StartDate  string `json:"start_date"`
	// MonthlyPayment is optional; empty means calculate it.
	MonthlyPayment string `json:"monthly_payment,omitempty"`
	TermMonths     int32  `json:"term_months"`
}

type GenerateScheduleResponse struct {
	LoanID          string           `json:"loan_id"`
	MonthlyPayment  string           `json:"monthly_payment"`
	TotalInterest   string           `json:"total_interest"`
	Entries         []*ScheduleEntry `json:"entries"`
	TotalEntries    int32            `json:"total_entries"`
	ScheduleVersion int32            `json:"schedule_version"`
}

type GetScheduleRequest struct {
	LoanID string `json:"loan_id"`
}

type GetScheduleResponse struct {
	LoanID  string           `json:"loan_id"`
	Entries []*ScheduleEntry `json:"entries"`
}

type AnalyzeRefinanceRequest struct {
	LoanID       string `json:"loan_id"`
	NewRate      string `json:"new_rate"`
	ClosingCosts string `json:"closing_costs,omitempty"`
}

type AnalyzeRefinanceResponse struct {
	Analysis *RefinanceAnalysis `json:"analysis"`
}

type ListRefinanceAnalysesRequest struct {
	LoanID string `json:"loan_id"`
}

type ListRefinanceAnalysesResponse struct {
	Analyses []*RefinanceAnalysis `json:"analyses"`
}

type ApplyPaymentRequest struct {
	LoanID        string `json:"loan_id"`
	PaymentAmount string `json:"payment_amount"`
	PaymentDate   string `json:"payment_date,omitempty"`
	Method        string `json:"method,omitempty"`
	Type          string `json:"type,omitempty"`
}

type ApplyPaymentResponse struct {
	PaymentID        string `json:"payment_id"`
	LoanID           string `json:"loan_id"`
	LoanStatus       string `json:"loan_status"`
	Amount           string `json:"amount"`
	InterestPortion  string `json:"interest_portion"`
	PrincipalPortion string `json:"principal_portion"`
	NewBalance       string `json:"new_balance"`
	MonthlyPayment   string `json:"monthly_payment"`
	PaymentNumber    int32  `json:"payment_number"`
	RemainingMonths  int32  `json:"remaining_months"`
}

type ListPaymentsRequest struct {
	LoanID string `json:"loan_id"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
