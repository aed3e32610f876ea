package config

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run seeds the demo catalog when the books table is empty. The first
// three books are seeded UNAVAILABLE with a matching ACTIVE loan each, so
// the seeded state satisfies the book/loan invariant and sits exactly at
// the borrower loan limit.
func (s *Seeder) Run() error {
	var count int64
	if err := s.db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Catalog already populated
	}

	log.Println("🌱 Seeding demo catalog...")

	books := seedBooks()
	for _, book := range books {
		if err := s.db.Create(book).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	due := now.AddDate(0, 0, domain.DefaultLoanPeriodDays)
	for i, borrower := range []string{"John Doe", "Alpha", "John Doe"} {
		loan := &models.Loan{
			BookID:        books[i].ID,
			BookName:      books[i].Title,
			BorrowerName:  borrower,
			BorrowerEmail: "john.doe@example.com",
			BorrowDate:    now,
			ReturnDate:    due,
			Status:        domain.LoanActive,
		}
		if err := s.db.Create(loan).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d books and 3 active loans", len(books))
	return nil
}

func seedBooks() []*models.Book {
	return []*models.Book{
		{
			Title:       "The Great Gatsby",
			Author:      "F. Scott Fitzgerald",
			ISBN:        "978-0743273565",
			PublishYear: 1925,
			Description: "A story of the fabulously wealthy Jay Gatsby and his love for the beautiful Daisy Buchanan.",
			Status:      domain.BookUnavailable,
		},
		{
			Title:       "To Kill a Mockingbird",
			Author:      "Harper Lee",
			ISBN:        "978-0446310789",
			PublishYear: 1960,
			Description: "The story of racial injustice and the loss of innocence in the American South.",
			Status:      domain.BookUnavailable,
		},
		{
			Title:       "1984",
			Author:      "George Orwell",
			ISBN:        "978-0451524935",
			PublishYear: 1949,
			Description: "A dystopian social science fiction novel and cautionary tale.",
			Status:      domain.BookUnavailable,
		},
		{
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			ISBN:        "978-0141439518",
			PublishYear: 1813,
			Description: "A romantic novel of manners about prejudice and marriage in Georgian England.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Catcher in the Rye",
			Author:      "J.D. Salinger",
			ISBN:        "978-0316769488",
			PublishYear: 1951,
			Description: "The story of a teenage boy grappling with alienation in post-war America.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Hobbit",
			Author:      "J.R.R. Tolkien",
			ISBN:        "978-0547928227",
			PublishYear: 1937,
			Description: "A fantasy novel about the adventures of Bilbo Baggins.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "Brave New World",
			Author:      "Aldous Huxley",
			ISBN:        "978-0060850524",
			PublishYear: 1932,
			Description: "A dystopian novel envisioning a technologically advanced future society.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Lord of the Rings",
			Author:      "J.R.R. Tolkien",
			ISBN:        "978-0618640157",
			PublishYear: 1954,
			Description: "An epic high-fantasy novel about the quest to destroy the One Ring.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "Fahrenheit 451",
			Author:      "Ray Bradbury",
			ISBN:        "978-1451673319",
			PublishYear: 1953,
			Description: "A dystopian novel about a future American society where books are outlawed.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Grapes of Wrath",
			Author:      "John Steinbeck",
			ISBN:        "978-0143039433",
			PublishYear: 1939,
			Description: "The story of a family's journey during the Great Depression.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "One Hundred Years of Solitude",
			Author:      "Gabriel García Márquez",
			ISBN:        "978-0060883287",
			PublishYear: 1967,
			Description: "A landmark of magical realism and the history of the Buendía family.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Odyssey",
			Author:      "Homer",
			ISBN:        "978-0140268867",
			PublishYear: 1614,
			Description: "Ancient Greek epic poem following Odysseus's journey home after the Trojan War.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "Don Quixote",
			Author:      "Miguel de Cervantes",
			ISBN:        "978-0060934347",
			PublishYear: 1605,
			Description: "The story of an elderly man who loses his sanity and becomes a knight-errant.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "War and Peace",
			Author:      "Leo Tolstoy",
			ISBN:        "978-0143039990",
			PublishYear: 1869,
			Description: "A narrative following five aristocratic families during the Napoleonic Era.",
			Status:      domain.BookAvailable,
		},
		{
			Title:       "The Divine Comedy",
			Author:      "Dante Alighieri",
			ISBN:        "978-0142437223",
			PublishYear: 1320,
			Description: "An epic poem describing Dante's journey through Hell, Purgatory, and Paradise.",
			Status:      domain.BookAvailable,
		},
	}
}
