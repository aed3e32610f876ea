package services

import (
	"context"
	"time"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// LoanService owns loan records: the ledger side of circulation
type LoanService struct {
	loanRepo repositories.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo repositories.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// LoanInput represents loan fields at creation time
type LoanInput struct {
	BookID        string
	BookName      string
	BorrowerName  string
	BorrowerEmail string
	BorrowDate    time.Time
	ReturnDate    time.Time
}

// List returns all loans
func (s *LoanService) List(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.List(ctx)
}

// ListActive returns all ACTIVE loans
func (s *LoanService) ListActive(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

// ListOverdue returns ACTIVE loans past their planned due date
func (s *LoanService) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, now)
}

// Get returns a loan by ID
func (s *LoanService) Get(ctx context.Context, id string) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// Insert persists a new loan. Status is forced to ACTIVE regardless of
// caller input; BorrowDate defaults to now and ReturnDate (the planned
// due date) to now plus the default loan period.
func (s *LoanService) Insert(ctx context.Context, input *LoanInput) (*models.Loan, error) {
	borrowDate := input.BorrowDate
	if borrowDate.IsZero() {
		borrowDate = time.Now()
	}
	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = borrowDate.AddDate(0, 0, domain.DefaultLoanPeriodDays)
	}

	loan := &models.Loan{
		BookID:        input.BookID,
		BookName:      input.BookName,
		BorrowerName:  input.BorrowerName,
		BorrowerEmail: input.BorrowerEmail,
		BorrowDate:    borrowDate,
		ReturnDate:    returnDate,
		Status:        domain.LoanActive,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// MarkReturned transitions a loan ACTIVE -> RETURNED and stamps the return
// time. It reports false when the loan was not ACTIVE, so a repeated return
// cannot overwrite the original stamp.
func (s *LoanService) MarkReturned(ctx context.Context, id string, at time.Time) (bool, error) {
	return s.loanRepo.MarkReturnedIf(ctx, id, at)
}

// CountActiveByBorrower counts the borrower's ACTIVE loans for limit checks
func (s *LoanService) CountActiveByBorrower(ctx context.Context, email string) (int64, error) {
	return s.loanRepo.CountActiveByBorrower(ctx, email)
}

// FindActiveByBook returns the ACTIVE loan referencing the book, or nil
func (s *LoanService) FindActiveByBook(ctx context.Context, bookID string) (*models.Loan, error) {
	return s.loanRepo.FindActiveByBook(ctx, bookID)
}

// Delete removes a single loan record
func (s *LoanService) Delete(ctx context.Context, id string) error {
	return s.loanRepo.Delete(ctx, id)
}

// DeleteByBook purges every loan referencing the book, active or returned
func (s *LoanService) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	return s.loanRepo.DeleteByBook(ctx, bookID)
}
