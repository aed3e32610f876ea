package domain

// BookStatus represents book availability
type BookStatus string

const (
	BookAvailable   BookStatus = "AVAILABLE"
	BookUnavailable BookStatus = "UNAVAILABLE"
)

// Valid reports whether the status is one of the known values
func (s BookStatus) Valid() bool {
	return s == BookAvailable || s == BookUnavailable
}

// LoanStatus represents the state of a loan
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
)

// Circulation rules
const (
	// MaxActiveLoansPerBorrower caps concurrent loans per borrower email.
	// Enforcement is best-effort: the count check and the loan insert are
	// not atomic against each other, so two concurrent borrows near the
	// limit may briefly exceed it.
	MaxActiveLoansPerBorrower = 3

	// DefaultLoanPeriodDays is the planned loan duration used when the
	// borrower does not supply a due date.
	DefaultLoanPeriodDays = 30

	// MaxPublishYear bounds the accepted publication year
	MaxPublishYear = 2026
)
