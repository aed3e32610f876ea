package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Rezawa7/BookLibrary/internal/core/services"
	"github.com/Rezawa7/BookLibrary/internal/pkg/identifier"
	"github.com/Rezawa7/BookLibrary/internal/pkg/response"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService        *services.LoanService
	circulationService *services.CirculationService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, circulationService *services.CirculationService) *LoanHandler {
	return &LoanHandler{
		loanService:        loanService,
		circulationService: circulationService,
	}
}

// BorrowRequest represents a borrow request
type BorrowRequest struct {
	BookID        string     `json:"book_id"`
	BorrowerName  string     `json:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email"`
	BorrowDate    *time.Time `json:"borrow_date,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
}

// List lists all loans
// @Summary List loans
// @Description List every loan, active or returned
// @Tags Loans
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.loanService.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// ListActive lists active loans with their books
// @Summary List active loans
// @Description List every ACTIVE loan together with its book
// @Tags Loans
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans/active [get]
func (h *LoanHandler) ListActive(c *fiber.Ctx) error {
	results, err := h.circulationService.ListActiveWithBooks(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Active loans retrieved successfully", results)
}

// Get gets a loan by ID
// @Summary Get loan by ID
// @Description Get a single loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	key, err := identifier.Parse(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	loan, err := h.loanService.Get(c.Context(), identifier.Format(key))
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Loan retrieved successfully", loan)
}

// Borrow creates a loan against an available book
// @Summary Borrow a book
// @Description Create an ACTIVE loan and mark the book unavailable
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body BorrowRequest true "Borrow data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	key, err := identifier.Parse(req.BookID)
	if err != nil {
		return mapDomainError(c, err)
	}

	input := &services.BorrowInput{
		BorrowerName:  req.BorrowerName,
		BorrowerEmail: req.BorrowerEmail,
	}
	if req.BorrowDate != nil {
		input.BorrowDate = *req.BorrowDate
	}
	if req.ReturnDate != nil {
		input.ReturnDate = *req.ReturnDate
	}

	loan, err := h.circulationService.Borrow(c.Context(), identifier.Format(key), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Created(c, "Loan created successfully", loan)
}

// Return closes an active loan
// @Summary Return a book
// @Description Mark a loan RETURNED and free its book
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/return [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	key, err := identifier.Parse(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	if err := h.circulationService.Return(c.Context(), identifier.Format(key)); err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Book returned successfully", nil)
}
