package repositories

import (
	"context"
	"time"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// BookRepository defines book storage access.
//
// Implementations provide per-record atomic updates and key lookup, but no
// cross-record atomicity. Lookups for absent keys fail with domain.ErrNotFound;
// any other storage failure is surfaced wrapped in domain.ErrStoreUnavailable.
type BookRepository interface {
	List(ctx context.Context) ([]*models.Book, error)
	// Search matches the query against title, author and description using
	// the store's text-relevance index. No match yields an empty slice.
	Search(ctx context.Context, query string) ([]*models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	// Update replaces the mutable catalog fields of an existing record.
	// It never touches Status.
	Update(ctx context.Context, book *models.Book) error
	// UpdateStatus sets the status field unconditionally
	UpdateStatus(ctx context.Context, id string, status domain.BookStatus) error
	// UpdateStatusIf sets the status field only if it currently equals from.
	// It reports false when the record exists but the condition did not hold.
	UpdateStatusIf(ctx context.Context, id string, from, to domain.BookStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

// LoanRepository defines loan storage access.
//
// Same error contract as BookRepository.
type LoanRepository interface {
	List(ctx context.Context) ([]*models.Loan, error)
	ListActive(ctx context.Context) ([]*models.Loan, error)
	ListActiveByBorrower(ctx context.Context, email string) ([]*models.Loan, error)
	// ListOverdue returns ACTIVE loans whose planned due date is before now
	ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error)
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) error
	// MarkReturnedIf transitions a loan ACTIVE -> RETURNED and stamps
	// ReturnDate with at, only if the loan is currently ACTIVE. It reports
	// false when the loan exists but was not ACTIVE.
	MarkReturnedIf(ctx context.Context, id string, at time.Time) (bool, error)
	CountActiveByBorrower(ctx context.Context, email string) (int64, error)
	// FindActiveByBook returns the ACTIVE loan referencing the book, or
	// (nil, nil) when the book has no active loan.
	FindActiveByBook(ctx context.Context, bookID string) (*models.Loan, error)
	Delete(ctx context.Context, id string) error
	// DeleteByBook removes every loan referencing the book, active or
	// returned, and returns the number of records removed.
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}
