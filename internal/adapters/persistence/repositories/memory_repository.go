package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
	"github.com/Rezawa7/BookLibrary/internal/pkg/identifier"
)

// MemoryBookRepository is an in-memory BookRepository. It honors the same
// per-record atomicity contract as the MySQL implementation and exists so
// the services can run against a substitutable store in tests.
type MemoryBookRepository struct {
	mu    sync.Mutex
	books map[string]models.Book
}

// NewMemoryBookRepository creates an empty in-memory book repository
func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{books: make(map[string]models.Book)}
}

// List returns all books
func (r *MemoryBookRepository) List(_ context.Context) ([]*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]*models.Book, 0, len(r.books))
	for id := range r.books {
		b := r.books[id]
		books = append(books, &b)
	}
	return books, nil
}

// Search does case-insensitive substring matching over title, author and
// description, standing in for the MySQL FULLTEXT index.
func (r *MemoryBookRepository) Search(_ context.Context, query string) ([]*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	var books []*models.Book
	for id := range r.books {
		b := r.books[id]
		haystack := strings.ToLower(b.Title + " " + b.Author + " " + b.Description)
		if strings.Contains(haystack, q) {
			books = append(books, &b)
		}
	}
	return books, nil
}

// GetByID gets a book by ID
func (r *MemoryBookRepository) GetByID(_ context.Context, id string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

// Create inserts a new book, assigning a key when absent
func (r *MemoryBookRepository) Create(_ context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = identifier.Format(identifier.New())
	}
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.books[book.ID] = *book
	return nil
}

// Update replaces the mutable catalog fields of an existing book
func (r *MemoryBookRepository) Update(_ context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[book.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Title = book.Title
	stored.Author = book.Author
	stored.ISBN = book.ISBN
	stored.PublishYear = book.PublishYear
	stored.Description = book.Description
	stored.UpdatedAt = time.Now()
	r.books[book.ID] = stored
	*book = stored
	return nil
}

// UpdateStatus sets the status field unconditionally
func (r *MemoryBookRepository) UpdateStatus(_ context.Context, id string, status domain.BookStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	r.books[id] = b
	return nil
}

// UpdateStatusIf sets the status only when it currently equals from
func (r *MemoryBookRepository) UpdateStatusIf(_ context.Context, id string, from, to domain.BookStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return false, nil
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	r.books[id] = b
	return true, nil
}

// Delete removes a book
func (r *MemoryBookRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

// MemoryLoanRepository is an in-memory LoanRepository
type MemoryLoanRepository struct {
	mu    sync.Mutex
	loans map[string]models.Loan
}

// NewMemoryLoanRepository creates an empty in-memory loan repository
func NewMemoryLoanRepository() *MemoryLoanRepository {
	return &MemoryLoanRepository{loans: make(map[string]models.Loan)}
}

// List returns all loans
func (r *MemoryLoanRepository) List(_ context.Context) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loans := make([]*models.Loan, 0, len(r.loans))
	for id := range r.loans {
		l := r.loans[id]
		loans = append(loans, &l)
	}
	return loans, nil
}

// ListActive returns all ACTIVE loans
func (r *MemoryLoanRepository) ListActive(_ context.Context) ([]*models.Loan, error) {
	return r.filter(func(l *models.Loan) bool {
		return l.Status == domain.LoanActive
	})
}

// ListActiveByBorrower returns the borrower's ACTIVE loans
func (r *MemoryLoanRepository) ListActiveByBorrower(_ context.Context, email string) ([]*models.Loan, error) {
	return r.filter(func(l *models.Loan) bool {
		return l.Status == domain.LoanActive && l.BorrowerEmail == email
	})
}

// ListOverdue returns ACTIVE loans whose planned due date has passed
func (r *MemoryLoanRepository) ListOverdue(_ context.Context, now time.Time) ([]*models.Loan, error) {
	return r.filter(func(l *models.Loan) bool {
		return l.IsOverdue(now)
	})
}

func (r *MemoryLoanRepository) filter(keep func(*models.Loan) bool) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var loans []*models.Loan
	for id := range r.loans {
		l := r.loans[id]
		if keep(&l) {
			loans = append(loans, &l)
		}
	}
	return loans, nil
}

// GetByID gets a loan by ID
func (r *MemoryLoanRepository) GetByID(_ context.Context, id string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

// Create inserts a new loan, assigning a key when absent
func (r *MemoryLoanRepository) Create(_ context.Context, loan *models.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if loan.ID == "" {
		loan.ID = identifier.Format(identifier.New())
	}
	now := time.Now()
	loan.CreatedAt = now
	loan.UpdatedAt = now
	r.loans[loan.ID] = *loan
	return nil
}

// MarkReturnedIf transitions a loan ACTIVE -> RETURNED and stamps ReturnDate
func (r *MemoryLoanRepository) MarkReturnedIf(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.loans[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if l.Status != domain.LoanActive {
		return false, nil
	}
	l.Status = domain.LoanReturned
	l.ReturnDate = at
	l.UpdatedAt = time.Now()
	r.loans[id] = l
	return true, nil
}

// CountActiveByBorrower counts the borrower's ACTIVE loans
func (r *MemoryLoanRepository) CountActiveByBorrower(ctx context.Context, email string) (int64, error) {
	loans, err := r.ListActiveByBorrower(ctx, email)
	if err != nil {
		return 0, err
	}
	return int64(len(loans)), nil
}

// FindActiveByBook returns the ACTIVE loan referencing the book, or nil
func (r *MemoryLoanRepository) FindActiveByBook(_ context.Context, bookID string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.loans {
		l := r.loans[id]
		if l.BookID == bookID && l.Status == domain.LoanActive {
			return &l, nil
		}
	}
	return nil, nil
}

// Delete removes a single loan
func (r *MemoryLoanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.loans, id)
	return nil
}

// DeleteByBook removes every loan referencing the book
func (r *MemoryLoanRepository) DeleteByBook(_ context.Context, bookID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id := range r.loans {
		if r.loans[id].BookID == bookID {
			delete(r.loans, id)
			removed++
		}
	}
	return removed, nil
}
