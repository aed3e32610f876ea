package services

import (
	"context"
	"strings"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// CatalogService owns book records and their availability state
type CatalogService struct {
	bookRepo repositories.BookRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(bookRepo repositories.BookRepository) *CatalogService {
	return &CatalogService{bookRepo: bookRepo}
}

// BookInput represents book fields for create and update
type BookInput struct {
	Title       string            `json:"title"`
	Author      string            `json:"author"`
	ISBN        string            `json:"isbn"`
	PublishYear int               `json:"publish_year"`
	Description string            `json:"description,omitempty"`
	Status      domain.BookStatus `json:"status,omitempty"`
}

// validate collects every violated field instead of failing on the first
func (in *BookInput) validate(allowStatus bool) error {
	verr := domain.NewValidationError()

	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "must not be empty")
	}
	if strings.TrimSpace(in.Author) == "" {
		verr.Add("author", "must not be empty")
	}
	if msg := validateISBN(in.ISBN); msg != "" {
		verr.Add("isbn", msg)
	}
	if in.PublishYear < 0 || in.PublishYear > domain.MaxPublishYear {
		verr.Add("publish_year", "must be between 0 and 2026")
	}
	if allowStatus && in.Status != "" && !in.Status.Valid() {
		verr.Add("status", "must be AVAILABLE or UNAVAILABLE")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// validateISBN checks the ISBN shape: after stripping hyphens it must be
// all digits and 10 or 13 characters long
func validateISBN(isbn string) string {
	cleaned := strings.ReplaceAll(isbn, "-", "")
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return "must be 10 or 13 digits long (excluding hyphens)"
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "must contain only digits and hyphens"
		}
	}
	return ""
}

// List returns the whole catalog
func (s *CatalogService) List(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.List(ctx)
}

// Search matches the query against title, author and description
func (s *CatalogService) Search(ctx context.Context, query string) ([]*models.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}
	books, err := s.bookRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*models.Book{}
	}
	return books, nil
}

// Get returns a book by ID
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// Create validates and persists a new book. Status defaults to AVAILABLE
// when unspecified.
func (s *CatalogService) Create(ctx context.Context, input *BookInput) (*models.Book, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.BookAvailable
	}

	book := &models.Book{
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		PublishYear: input.PublishYear,
		Description: input.Description,
		Status:      status,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update validates and replaces the mutable fields of an existing book.
// Status is deliberately not updatable here: availability transitions
// belong to the circulation service so the book/loan invariant holds.
func (s *CatalogService) Update(ctx context.Context, id string, input *BookInput) (*models.Book, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:          id,
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		PublishYear: input.PublishYear,
		Description: input.Description,
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return s.bookRepo.GetByID(ctx, id)
}

// Delete removes a book from the catalog. Cleanup of dependent loans is
// owned by the circulation service, never done here.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.bookRepo.Delete(ctx, id)
}

// SetStatus sets a book's availability unconditionally
func (s *CatalogService) SetStatus(ctx context.Context, id string, status domain.BookStatus) error {
	return s.bookRepo.UpdateStatus(ctx, id, status)
}

// SetStatusIf sets a book's availability only when it currently equals
// from, reporting whether the transition was applied
func (s *CatalogService) SetStatusIf(ctx context.Context, id string, from, to domain.BookStatus) (bool, error) {
	return s.bookRepo.UpdateStatusIf(ctx, id, from, to)
}
