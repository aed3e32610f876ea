package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

func newBook(title, author, description string) *models.Book {
	return &models.Book{
		Title:       title,
		Author:      author,
		ISBN:        "9780441013593",
		PublishYear: 1965,
		Description: description,
		Status:      domain.BookAvailable,
	}
}

func TestBookRepositoryCreateAssignsKey(t *testing.T) {
	repo := repositories.NewMemoryBookRepository()
	ctx := context.Background()

	book := newBook("Dune", "Herbert", "")
	require.NoError(t, repo.Create(ctx, book))
	assert.NotEmpty(t, book.ID)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestBookRepositoryGetMissing(t *testing.T) {
	repo := repositories.NewMemoryBookRepository()

	_, err := repo.GetByID(context.Background(), "743e6d0a-81b3-4b43-befb-1051c7a64a14")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookRepositorySearchMatchesAllIndexedFields(t *testing.T) {
	repo := repositories.NewMemoryBookRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBook("Dune", "Frank Herbert", "desert planet")))
	require.NoError(t, repo.Create(ctx, newBook("Hyperion", "Dan Simmons", "pilgrimage")))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "by_title", query: "dune", want: 1},
		{name: "by_author", query: "Herbert", want: 1},
		{name: "by_description", query: "desert", want: 1},
		{name: "no_match", query: "asimov", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			books, err := repo.Search(ctx, tc.query)
			require.NoError(t, err)
			assert.Len(t, books, tc.want)
		})
	}
}

func TestBookRepositoryUpdateStatusIf(t *testing.T) {
	repo := repositories.NewMemoryBookRepository()
	ctx := context.Background()

	book := newBook("Dune", "Herbert", "")
	require.NoError(t, repo.Create(ctx, book))

	// First transition wins
	ok, err := repo.UpdateStatusIf(ctx, book.ID, domain.BookAvailable, domain.BookUnavailable)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second transition from the same expected state loses
	ok, err = repo.UpdateStatusIf(ctx, book.ID, domain.BookAvailable, domain.BookUnavailable)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookUnavailable, got.Status)
}

func TestBookRepositoryUpdateDoesNotTouchStatus(t *testing.T) {
	repo := repositories.NewMemoryBookRepository()
	ctx := context.Background()

	book := newBook("Dune", "Herbert", "")
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, repo.UpdateStatus(ctx, book.ID, domain.BookUnavailable))

	updated := &models.Book{
		ID:          book.ID,
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		ISBN:        "9780441172696",
		PublishYear: 1969,
		Status:      domain.BookAvailable, // must be ignored
	}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, domain.BookUnavailable, got.Status)
}

func activeLoan(bookID, email string) *models.Loan {
	now := time.Now()
	return &models.Loan{
		BookID:        bookID,
		BookName:      "Dune",
		BorrowerName:  "Paul",
		BorrowerEmail: email,
		BorrowDate:    now,
		ReturnDate:    now.AddDate(0, 0, domain.DefaultLoanPeriodDays),
		Status:        domain.LoanActive,
	}
}

func TestLoanRepositoryMarkReturnedIf(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()
	ctx := context.Background()

	loan := activeLoan("book-1", "a@x.com")
	require.NoError(t, repo.Create(ctx, loan))

	stamp := time.Now()
	ok, err := repo.MarkReturnedIf(ctx, loan.ID, stamp)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second return must not overwrite the stamp
	ok, err = repo.MarkReturnedIf(ctx, loan.ID, stamp.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, got.Status)
	assert.True(t, got.ReturnDate.Equal(stamp))
}

func TestLoanRepositoryMarkReturnedMissing(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()

	_, err := repo.MarkReturnedIf(context.Background(), "missing", time.Now())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLoanRepositoryCountActiveByBorrower(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, activeLoan("book-1", "a@x.com")))
	require.NoError(t, repo.Create(ctx, activeLoan("book-2", "a@x.com")))
	require.NoError(t, repo.Create(ctx, activeLoan("book-3", "b@x.com")))

	returned := activeLoan("book-4", "a@x.com")
	require.NoError(t, repo.Create(ctx, returned))
	_, err := repo.MarkReturnedIf(ctx, returned.ID, time.Now())
	require.NoError(t, err)

	count, err := repo.CountActiveByBorrower(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoanRepositoryDeleteByBook(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()
	ctx := context.Background()

	returned := activeLoan("book-1", "a@x.com")
	require.NoError(t, repo.Create(ctx, returned))
	_, err := repo.MarkReturnedIf(ctx, returned.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, activeLoan("book-1", "b@x.com")))
	require.NoError(t, repo.Create(ctx, activeLoan("book-2", "c@x.com")))

	// Removes active and returned loans alike
	removed, err := repo.DeleteByBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "book-2", remaining[0].BookID)
}

func TestLoanRepositoryFindActiveByBook(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()
	ctx := context.Background()

	loan := activeLoan("book-1", "a@x.com")
	require.NoError(t, repo.Create(ctx, loan))

	got, err := repo.FindActiveByBook(ctx, "book-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, loan.ID, got.ID)

	_, err = repo.MarkReturnedIf(ctx, loan.ID, time.Now())
	require.NoError(t, err)

	got, err = repo.FindActiveByBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoanRepositoryListOverdue(t *testing.T) {
	repo := repositories.NewMemoryLoanRepository()
	ctx := context.Background()

	overdue := activeLoan("book-1", "a@x.com")
	overdue.ReturnDate = time.Now().AddDate(0, 0, -1)
	require.NoError(t, repo.Create(ctx, overdue))

	require.NoError(t, repo.Create(ctx, activeLoan("book-2", "b@x.com")))

	loans, err := repo.ListOverdue(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "book-1", loans[0].BookID)
}
