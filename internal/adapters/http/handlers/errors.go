package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Rezawa7/BookLibrary/internal/core/domain"
	"github.com/Rezawa7/BookLibrary/internal/pkg/response"
)

// mapDomainError translates a domain failure into the wire response. Every
// failure kind keeps a distinct, stable message so clients can branch on
// cause.
func mapDomainError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return response.BadRequest(c, verr.Error())
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return response.BadRequest(c, "Invalid identifier")
	case errors.Is(err, domain.ErrInvalidQuery):
		return response.BadRequest(c, "Search query must not be empty")
	case errors.Is(err, domain.ErrBookUnavailable):
		return response.Conflict(c, "Book is not available for loan")
	case errors.Is(err, domain.ErrLoanLimitExceeded):
		return response.Conflict(c, "Borrower has reached maximum number of allowed loans (3)")
	case errors.Is(err, domain.ErrAlreadyReturned):
		return response.Conflict(c, "Loan has already been returned")
	case errors.Is(err, domain.ErrConcurrentConflict):
		return response.Conflict(c, "Book was claimed by a concurrent loan, please retry")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return response.Error(c, fiber.StatusServiceUnavailable, "Storage temporarily unavailable")
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
