package handler

import (
	"errors"
	"net/http"
	"strconv"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes book endpoints
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates the book HTTP handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// ListBooks handles GET /books
// Query params: search, category, available_only, page, limit
func (h *Handler) ListBooks(c *gin.Context) {
	req := model.ListBooksRequest{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		AvailableOnly: c.Query("available_only") == "true",
		Page:          1,
		Limit:         20,
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			req.Page = p
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			req.Limit = l
		}
	}

	books, total, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch books")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// GetBook handles GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// CreateBook handles POST /books (admin only)
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// UpdateBook handles PUT /books/:id (admin only)
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if req.IsEmpty() {
		response.BadRequest(c, "No valid fields to update")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// DeleteBook handles DELETE /books/:id (admin only)
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrISBNAlreadyExists):
		response.UnprocessableEntity(c, "Validation failed", gin.H{"isbn": "ISBN already exists"})
	case errors.Is(err, model.ErrBookHasActiveLoans):
		response.Conflict(c, "Cannot delete book with active borrowing records")
	case errors.Is(err, model.ErrBookHasLoanHistory):
		response.Conflict(c, "Cannot delete book with borrow history")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}

func parseBookID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid book id")
	}
	return id, nil
}
