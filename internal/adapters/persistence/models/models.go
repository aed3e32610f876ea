package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Rezawa7/BookLibrary/internal/core/domain"
	"github.com/Rezawa7/BookLibrary/internal/pkg/identifier"
)

// Book represents the books table
type Book struct {
	ID          string            `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Author      string            `gorm:"size:255;not null" json:"author"`
	ISBN        string            `gorm:"column:isbn;size:17;not null" json:"isbn"`
	PublishYear int               `gorm:"not null" json:"publish_year"`
	Description string            `gorm:"type:text" json:"description"`
	Status      domain.BookStatus `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns the store key
func (b *Book) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = identifier.Format(identifier.New())
	}
	return nil
}

// Loan represents the loans table.
//
// BookID stays a typed key reference for the whole lifetime of the loan,
// including after return, so the historical link to the book survives.
// ReturnDate is the planned due date while the loan is ACTIVE and the
// actual return timestamp once it is RETURNED.
type Loan struct {
	ID            string            `gorm:"type:char(36);primaryKey" json:"id"`
	BookID        string            `gorm:"type:char(36);not null;index" json:"book_id"`
	BookName      string            `gorm:"size:255" json:"book_name"`
	BorrowerName  string            `gorm:"size:255;not null" json:"borrower_name"`
	BorrowerEmail string            `gorm:"size:255;not null;index" json:"borrower_email"`
	BorrowDate    time.Time         `gorm:"not null" json:"borrow_date"`
	ReturnDate    time.Time         `gorm:"not null" json:"return_date"`
	Status        domain.LoanStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

// BeforeCreate assigns the store key
func (l *Loan) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = identifier.Format(identifier.New())
	}
	return nil
}

// IsReturned reports whether the loan has been closed
func (l *Loan) IsReturned() bool {
	return l.Status == domain.LoanReturned
}

// IsOverdue reports whether an ACTIVE loan is past its planned due date
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == domain.LoanActive && l.ReturnDate.Before(now)
}

// BookWithLoan pairs a book with its active loan, if any
type BookWithLoan struct {
	Book       *Book `json:"book"`
	ActiveLoan *Loan `json:"active_loan"`
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Loan{},
	)
}
