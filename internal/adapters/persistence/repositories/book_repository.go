package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// wrapStoreErr maps storage errors to the domain error contract
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// GormBookRepository handles book data access on MySQL
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// List returns all books
func (r *GormBookRepository) List(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).Find(&books).Error
	return books, wrapStoreErr(err)
}

// Search matches the query against the FULLTEXT index on (title, author, description)
func (r *GormBookRepository) Search(ctx context.Context, query string) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("MATCH(title, author, description) AGAINST(? IN NATURAL LANGUAGE MODE)", query).
		Find(&books).Error
	return books, wrapStoreErr(err)
}

// GetByID gets a book by ID
func (r *GormBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &book, nil
}

// Create inserts a new book
func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return wrapStoreErr(r.db.WithContext(ctx).Create(book).Error)
}

// Update replaces the mutable catalog fields of an existing book
func (r *GormBookRepository) Update(ctx context.Context, book *models.Book) error {
	res := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]interface{}{
			"title":        book.Title,
			"author":       book.Author,
			"isbn":         book.ISBN,
			"publish_year": book.PublishYear,
			"description":  book.Description,
		})
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates only reports changed rows, so distinguish a missing
		// record from an unchanged one
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Book{}).
			Where("id = ?", book.ID).Count(&count).Error; err != nil {
			return wrapStoreErr(err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// UpdateStatus sets the status field unconditionally
func (r *GormBookRepository) UpdateStatus(ctx context.Context, id string, status domain.BookStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Book{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return wrapStoreErr(err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// UpdateStatusIf sets the status only when it currently equals from. The
// conditional WHERE clause makes the transition a single-record atomic
// compare-and-set, so two concurrent borrows on one book cannot both win.
func (r *GormBookRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.BookStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, wrapStoreErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a book
func (r *GormBookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
