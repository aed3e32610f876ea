package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs. Currently a single daily
// sweep at 08:30 that reports ACTIVE loans past their planned due date.
type CronService struct {
	ledger *LoanService
	cron   *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(ledger *LoanService) *CronService {
	return &CronService{
		ledger: ledger,
		cron:   cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 08:30 daily
	if _, err := s.cron.AddFunc("30 8 * * *", s.reportOverdueLoans); err != nil {
		log.Printf("❌ Failed to schedule overdue sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CronService started (overdue sweep at 08:30 daily)")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// reportOverdueLoans logs every ACTIVE loan whose due date has passed
func (s *CronService) reportOverdueLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	loans, err := s.ledger.ListOverdue(ctx, now)
	if err != nil {
		log.Printf("❌ Overdue sweep query error: %v", err)
		return
	}

	for _, loan := range loans {
		days := int(now.Sub(loan.ReturnDate).Hours() / 24)
		log.Printf("📅 Overdue: %q borrowed by %s <%s>, due %s (%d days late)",
			loan.BookName,
			loan.BorrowerName,
			loan.BorrowerEmail,
			loan.ReturnDate.Format("2006-01-02"),
			days,
		)
	}

	if len(loans) > 0 {
		log.Printf("📅 Overdue sweep found %d overdue loans", len(loans))
	}
}
