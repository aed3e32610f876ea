package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// GormLoanRepository handles loan data access on MySQL
type GormLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// List returns all loans
func (r *GormLoanRepository) List(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Find(&loans).Error
	return loans, wrapStoreErr(err)
}

// ListActive returns all ACTIVE loans
func (r *GormLoanRepository) ListActive(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.LoanActive).
		Find(&loans).Error
	return loans, wrapStoreErr(err)
}

// ListActiveByBorrower returns the borrower's ACTIVE loans
func (r *GormLoanRepository) ListActiveByBorrower(ctx context.Context, email string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("borrower_email = ? AND status = ?", email, domain.LoanActive).
		Find(&loans).Error
	return loans, wrapStoreErr(err)
}

// ListOverdue returns ACTIVE loans whose planned due date has passed
func (r *GormLoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND return_date < ?", domain.LoanActive, now).
		Find(&loans).Error
	return loans, wrapStoreErr(err)
}

// GetByID gets a loan by ID
func (r *GormLoanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.WithContext(ctx).First(&loan, "id = ?", id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &loan, nil
}

// Create inserts a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return wrapStoreErr(r.db.WithContext(ctx).Create(loan).Error)
}

// MarkReturnedIf transitions a loan ACTIVE -> RETURNED and stamps ReturnDate.
// The conditional WHERE clause makes the transition atomic, so a competing
// return of the same loan reports false instead of overwriting the stamp.
func (r *GormLoanRepository) MarkReturnedIf(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND status = ?", id, domain.LoanActive).
		Updates(map[string]interface{}{
			"status":      domain.LoanReturned,
			"return_date": at,
		})
	if res.Error != nil {
		return false, wrapStoreErr(res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Distinguish a lost race from a missing record
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapStoreErr(err)
	}
	if count == 0 {
		return false, domain.ErrNotFound
	}
	return false, nil
}

// CountActiveByBorrower counts the borrower's ACTIVE loans
func (r *GormLoanRepository) CountActiveByBorrower(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("borrower_email = ? AND status = ?", email, domain.LoanActive).
		Count(&count).Error
	return count, wrapStoreErr(err)
}

// FindActiveByBook returns the ACTIVE loan referencing the book, or nil
func (r *GormLoanRepository) FindActiveByBook(ctx context.Context, bookID string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		First(&loan, "book_id = ? AND status = ?", bookID, domain.LoanActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &loan, nil
}

// Delete removes a single loan
func (r *GormLoanRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Loan{}, "id = ?", id)
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByBook removes every loan referencing the book
func (r *GormLoanRepository) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Loan{}, "book_id = ?", bookID)
	return res.RowsAffected, wrapStoreErr(res.Error)
}
