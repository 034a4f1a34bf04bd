package handler

import (
	"errors"
	"net/http"
	"strconv"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/actor"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the lending endpoints
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates the loan HTTP handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Borrow handles POST /records
func (h *Handler) Borrow(c *gin.Context) {
	current, ok := actor.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	loan, err := h.service.Borrow(c.Request.Context(), current, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// Return handles POST /records/return
func (h *Handler) Return(c *gin.Context) {
	current, ok := actor.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	result, err := h.service.Return(c.Request.Context(), current, req.RecordID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListLoans handles GET /records
// Query params: status, student_id (admin only), page, limit
func (h *Handler) ListLoans(c *gin.Context) {
	current, ok := actor.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	req := model.ListLoansRequest{
		Status: c.Query("status"),
		Page:   1,
		Limit:  20,
	}

	if idStr := c.Query("student_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
			req.StudentID = id
		}
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

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	loans, total, err := h.service.ListLoans(c.Request.Context(), current, req)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch records")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		response.NotFound(c, "Record not found")
	case errors.Is(err, bookmodel.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrBookUnavailable):
		response.Conflict(c, "Book is not available for borrowing")
	case errors.Is(err, model.ErrDuplicateActiveLoan):
		response.Conflict(c, "Student already has this book borrowed")
	case errors.Is(err, model.ErrAlreadyReturned):
		response.Conflict(c, "Book is already returned")
	case errors.Is(err, model.ErrNotRecordOwner):
		response.Forbidden(c, "You can only return your own books")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
