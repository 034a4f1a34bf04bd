package handler

import (
	"errors"
	"net/http"
	"strconv"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/domains/student/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes student roster and auth endpoints
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates the student HTTP handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// ListStudents handles GET /students (admin only)
// Query params: search, course, year, page, limit
func (h *Handler) ListStudents(c *gin.Context) {
	req := model.ListStudentsRequest{
		Search: c.Query("search"),
		Course: c.Query("course"),
		Year:   c.Query("year"),
		Page:   1,
		Limit:  20,
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

	students, total, err := h.service.ListStudents(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch students")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, students, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// GetStudent handles GET /students/:id (admin only)
func (h *Handler) GetStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.service.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, student)
}

// CreateStudent handles POST /students (admin only)
func (h *Handler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	student, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, student)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrStudentNotFound):
		response.NotFound(c, "Student not found")
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.UnprocessableEntity(c, "Validation failed", gin.H{"email": "Email already exists"})
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
