package valueobject

// RawApplication is the financial part of a loan application as submitted.
// No field is required and no value is ever rejected.
type RawApplication struct {
	AnnualRevenue     RawNumber `json:"annualRevenue" yaml:"annualRevenue"`
	OperatingExpenses RawNumber `json:"operatingExpenses" yaml:"operatingExpenses"` // monthly
	LoanAmount        RawNumber `json:"loanAmount" yaml:"loanAmount"`
	Amount            RawNumber `json:"amount,omitzero" yaml:"amount,omitempty"`
	YearsInBusiness   RawNumber `json:"yearsInBusiness" yaml:"yearsInBusiness"`
	CreditScore       RawNumber `json:"creditScore" yaml:"creditScore"`
}

// ModelLoanAmount is the loan amount the feature pipeline reads:
// LoanAmount, falling back to Amount when only the top-level amount is
// present.
func (r RawApplication) ModelLoanAmount() RawNumber {
	if r.LoanAmount.IsSet() {
		return r.LoanAmount
	}
	return r.Amount
}

// RequestedAmount is the amount the decision policy weighs: the top-level
// Amount of a submission, falling back to LoanAmount for bare financial
// data that has no top-level amount.
func (r RawApplication) RequestedAmount() RawNumber {
	if r.Amount.IsSet() {
		return r.Amount
	}
	return r.LoanAmount
}

// WithAmount returns a copy whose Amount is set to amount.
func (r RawApplication) WithAmount(amount RawNumber) RawApplication {
	r.Amount = amount
	return r
}
