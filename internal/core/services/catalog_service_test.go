package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
	"github.com/Rezawa7/BookLibrary/internal/core/services"
)

func newCatalog() *services.CatalogService {
	return services.NewCatalogService(repositories.NewMemoryBookRepository())
}

func validBookInput() *services.BookInput {
	return &services.BookInput{
		Title:       "Dune",
		Author:      "Herbert",
		ISBN:        "9780441013593",
		PublishYear: 1965,
		Description: "Desert planet epic",
	}
}

func TestCreateThenGetReturnsStoredRecord(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	created, err := catalog.Create(ctx, validBookInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.BookAvailable, created.Status)

	got, err := catalog.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Herbert", got.Author)
	assert.Equal(t, "9780441013593", got.ISBN)
	assert.Equal(t, 1965, got.PublishYear)
	assert.Equal(t, "Desert planet epic", got.Description)
	assert.Equal(t, domain.BookAvailable, got.Status)
}

func TestCreateKeepsExplicitStatus(t *testing.T) {
	catalog := newCatalog()

	input := validBookInput()
	input.Status = domain.BookUnavailable

	created, err := catalog.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.BookUnavailable, created.Status)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*services.BookInput)
		badFields []string
	}{
		{
			name:      "empty_title",
			mutate:    func(in *services.BookInput) { in.Title = "" },
			badFields: []string{"title"},
		},
		{
			name:      "blank_author",
			mutate:    func(in *services.BookInput) { in.Author = "   " },
			badFields: []string{"author"},
		},
		{
			name:      "isbn_too_short",
			mutate:    func(in *services.BookInput) { in.ISBN = "12345" },
			badFields: []string{"isbn"},
		},
		{
			name:      "isbn_not_digits",
			mutate:    func(in *services.BookInput) { in.ISBN = "abcdefghij" },
			badFields: []string{"isbn"},
		},
		{
			name:      "year_too_large",
			mutate:    func(in *services.BookInput) { in.PublishYear = 2027 },
			badFields: []string{"publish_year"},
		},
		{
			name:      "year_negative",
			mutate:    func(in *services.BookInput) { in.PublishYear = -1 },
			badFields: []string{"publish_year"},
		},
		{
			name:      "bad_status",
			mutate:    func(in *services.BookInput) { in.Status = "LOST" },
			badFields: []string{"status"},
		},
		{
			name: "multiple_violations",
			mutate: func(in *services.BookInput) {
				in.Title = ""
				in.ISBN = "12345"
			},
			badFields: []string{"title", "isbn"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := newCatalog()

			input := validBookInput()
			tc.mutate(input)

			_, err := catalog.Create(context.Background(), input)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(tc.badFields))
			for _, field := range tc.badFields {
				assert.Contains(t, verr.Fields, field)
			}
		})
	}
}

func TestCreateAcceptsHyphenatedISBN(t *testing.T) {
	tests := []struct {
		name string
		isbn string
	}{
		{name: "isbn13_hyphenated", isbn: "978-0743273565"},
		{name: "isbn13_plain", isbn: "9780441013593"},
		{name: "isbn10_plain", isbn: "0441013597"},
		{name: "isbn10_hyphenated", isbn: "0-441-01359-7"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := newCatalog()

			input := validBookInput()
			input.ISBN = tc.isbn

			_, err := catalog.Create(context.Background(), input)
			assert.NoError(t, err)
		})
	}
}

func TestUpdateReplacesMutableFields(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	created, err := catalog.Create(ctx, validBookInput())
	require.NoError(t, err)

	updated, err := catalog.Update(ctx, created.ID, &services.BookInput{
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		ISBN:        "9780441172696",
		PublishYear: 1969,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, domain.BookAvailable, updated.Status)
}

func TestUpdateMissingBook(t *testing.T) {
	catalog := newCatalog()

	_, err := catalog.Update(context.Background(), "743e6d0a-81b3-4b43-befb-1051c7a64a14", validBookInput())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateValidatesInput(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	created, err := catalog.Create(ctx, validBookInput())
	require.NoError(t, err)

	input := validBookInput()
	input.ISBN = "12345"

	_, err = catalog.Update(ctx, created.ID, input)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	catalog := newCatalog()

	for _, query := range []string{"", "   "} {
		_, err := catalog.Search(context.Background(), query)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
	}
}

func TestSearchNoMatchReturnsEmptySlice(t *testing.T) {
	catalog := newCatalog()

	books, err := catalog.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestDeleteMissingBook(t *testing.T) {
	catalog := newCatalog()

	err := catalog.Delete(context.Background(), "743e6d0a-81b3-4b43-befb-1051c7a64a14")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
