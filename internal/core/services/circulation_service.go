package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// CirculationService coordinates the two-record state transitions that the
// catalog and the loan ledger cannot safely perform alone: borrowing,
// returning and book deletion with its loan cascade. It is the only
// component that touches both collections for one logical operation, and
// the only caller of the catalog's status setters.
type CirculationService struct {
	catalog *CatalogService
	ledger  *LoanService
}

// NewCirculationService creates a new circulation service
func NewCirculationService(catalog *CatalogService, ledger *LoanService) *CirculationService {
	return &CirculationService{
		catalog: catalog,
		ledger:  ledger,
	}
}

// BorrowInput represents a borrow request
type BorrowInput struct {
	BorrowerName  string
	BorrowerEmail string
	BorrowDate    time.Time
	ReturnDate    time.Time
}

func (in *BorrowInput) validate() error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.BorrowerName) == "" {
		verr.Add("borrower_name", "must not be empty")
	}
	if strings.TrimSpace(in.BorrowerEmail) == "" {
		verr.Add("borrower_email", "must not be empty")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Borrow admits a loan request against a book.
//
// Admission: the book must exist and be AVAILABLE, and the borrower must
// hold fewer than the maximum number of ACTIVE loans. The loan is inserted
// first, then the book is claimed with a conditional status update; if a
// concurrent borrow claimed the book in between, the inserted loan is
// rolled back so no orphaned ACTIVE loan survives. A lost race is retried
// once before surfacing domain.ErrConcurrentConflict, since contention on
// a popular book is expected rather than exceptional.
//
// The borrower limit check is read-then-act and therefore best-effort:
// without a cross-record lock two near-limit borrows may both pass it.
func (s *CirculationService) Borrow(ctx context.Context, bookID string, input *BorrowInput) (*models.Loan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	const attempts = 2
	for attempt := 0; attempt < attempts; attempt++ {
		book, err := s.catalog.Get(ctx, bookID)
		if err != nil {
			return nil, err
		}

		if book.Status != domain.BookAvailable {
			if attempt > 0 {
				// The book was AVAILABLE when this operation started
				// and got claimed underneath it
				return nil, domain.ErrConcurrentConflict
			}
			return nil, domain.ErrBookUnavailable
		}

		active, err := s.ledger.CountActiveByBorrower(ctx, input.BorrowerEmail)
		if err != nil {
			return nil, err
		}
		if active >= domain.MaxActiveLoansPerBorrower {
			return nil, domain.ErrLoanLimitExceeded
		}

		loan, err := s.ledger.Insert(ctx, &LoanInput{
			BookID:        book.ID,
			BookName:      book.Title,
			BorrowerName:  input.BorrowerName,
			BorrowerEmail: input.BorrowerEmail,
			BorrowDate:    input.BorrowDate,
			ReturnDate:    input.ReturnDate,
		})
		if err != nil {
			return nil, err
		}

		claimed, err := s.catalog.SetStatusIf(ctx, book.ID, domain.BookAvailable, domain.BookUnavailable)
		if err != nil {
			s.rollbackLoan(ctx, loan.ID)
			return nil, err
		}
		if claimed {
			return loan, nil
		}

		// Lost the race: compensate inline and try again
		s.rollbackLoan(ctx, loan.ID)
	}

	return nil, domain.ErrConcurrentConflict
}

// rollbackLoan compensates a loan insert whose book claim failed
func (s *CirculationService) rollbackLoan(ctx context.Context, loanID string) {
	if err := s.ledger.Delete(ctx, loanID); err != nil {
		log.Printf("⚠️ Failed to roll back loan %s after lost book claim: %v", loanID, err)
	}
}

// Return closes an ACTIVE loan and frees its book.
//
// The loan transition is a conditional update, so a repeated or concurrent
// return fails with domain.ErrAlreadyReturned and never overwrites the
// original return stamp. If the book record no longer exists the loan
// stays RETURNED and domain.ErrNotFound is surfaced: a missing book is not
// recoverable by retrying.
func (s *CirculationService) Return(ctx context.Context, loanID string) error {
	loan, err := s.ledger.Get(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.IsReturned() {
		return domain.ErrAlreadyReturned
	}

	returned, err := s.ledger.MarkReturned(ctx, loanID, time.Now())
	if err != nil {
		return err
	}
	if !returned {
		return domain.ErrAlreadyReturned
	}

	if err := s.catalog.SetStatus(ctx, loan.BookID, domain.BookAvailable); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("⚠️ Returned loan %s references missing book %s", loanID, loan.BookID)
		}
		return err
	}
	return nil
}

// DeleteBook removes a book and purges every loan referencing it. The book
// delete runs first: if it fails, no loans are touched, so loan history
// never points at a record that was half-deleted.
func (s *CirculationService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.catalog.Delete(ctx, bookID); err != nil {
		return err
	}

	purged, err := s.ledger.DeleteByBook(ctx, bookID)
	if err != nil {
		return err
	}
	if purged > 0 {
		log.Printf("🗑️ Purged %d loans for deleted book %s", purged, bookID)
	}
	return nil
}

// GetBookWithActiveLoan returns a book together with its ACTIVE loan, if any
func (s *CirculationService) GetBookWithActiveLoan(ctx context.Context, bookID string) (*models.BookWithLoan, error) {
	book, err := s.catalog.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	loan, err := s.ledger.FindActiveByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &models.BookWithLoan{Book: book, ActiveLoan: loan}, nil
}

// ListActiveWithBooks returns every ACTIVE loan paired with its book.
// Loans whose book has vanished are skipped.
func (s *CirculationService) ListActiveWithBooks(ctx context.Context) ([]*models.BookWithLoan, error) {
	loans, err := s.ledger.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*models.BookWithLoan, 0, len(loans))
	for _, loan := range loans {
		book, err := s.catalog.Get(ctx, loan.BookID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, &models.BookWithLoan{Book: book, ActiveLoan: loan})
	}
	return results, nil
}
