package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rezawa7/BookLibrary/internal/core/domain"
	"github.com/Rezawa7/BookLibrary/internal/core/services"
	"github.com/Rezawa7/BookLibrary/internal/pkg/identifier"
	"github.com/Rezawa7/BookLibrary/internal/pkg/response"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	catalogService     *services.CatalogService
	circulationService *services.CirculationService
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *services.CatalogService, circulationService *services.CirculationService) *BookHandler {
	return &BookHandler{
		catalogService:     catalogService,
		circulationService: circulationService,
	}
}

// BookRequest represents a create/update book request
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	PublishYear int    `json:"publish_year"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (req *BookRequest) toInput() *services.BookInput {
	return &services.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		Description: req.Description,
		Status:      domain.BookStatus(req.Status),
	}
}

// List lists all books
// @Summary List books
// @Description List the whole catalog
// @Tags Books
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.catalogService.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Books retrieved successfully", books)
}

// Search searches books by text query
// @Summary Search books
// @Description Full-text search over title, author and description
// @Tags Books
// @Accept json
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books/search [get]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	books, err := h.catalogService.Search(c.Context(), c.Query("query"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Books retrieved successfully", books)
}

// Get gets a book with its active loan
// @Summary Get book by ID
// @Description Get a book together with its active loan, if any
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	key, err := identifier.Parse(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	result, err := h.circulationService.GetBookWithActiveLoan(c.Context(), identifier.Format(key))
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Book retrieved successfully", result)
}

// Create creates a new book
// @Summary Create book
// @Description Create a new catalog book
// @Tags Books
// @Accept json
// @Produce json
// @Param body body BookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.catalogService.Create(c.Context(), req.toInput())
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Created(c, "Book created successfully", book)
}

// Update updates a book
// @Summary Update book
// @Description Replace the mutable fields of a book
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param body body BookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	key, err := identifier.Parse(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.catalogService.Update(c.Context(), identifier.Format(key), req.toInput())
	if err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Book updated successfully", book)
}

// Delete deletes a book and purges its loans
// @Summary Delete book
// @Description Delete a book and every loan referencing it
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	key, err := identifier.Parse(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	if err := h.circulationService.DeleteBook(c.Context(), identifier.Format(key)); err != nil {
		return mapDomainError(c, err)
	}
	return response.Success(c, "Book deleted", nil)
}
