package handler

import (
	"net/http"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/shared/actor"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON input")
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, "Validation failed", err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout handles POST /auth/logout.
// Tokens are stateless; the client discards them. The endpoint exists
// so clients have a uniform call on sign-out.
func (h *Handler) Logout(c *gin.Context) {
	if _, ok := actor.Current(c); !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me handles GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	current, ok := actor.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	student, err := h.service.GetStudent(c.Request.Context(), current.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, student)
}
