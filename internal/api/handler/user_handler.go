package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// UserHandler serves staff account management and the faculty
// directory.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create registers a staff account.
// POST /api/v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 20002, "a user with this email already exists")
		case errors.Is(err, service.ErrDepartmentRequired):
			response.BadRequest(c, 20003, "department is required for faculty members")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// Get returns one staff account.
// GET /api/v1/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// List returns staff accounts, paginated.
// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, page.GetPage(), page.GetPageSize())
}

// Update patches a staff account.
// PUT /api/v1/admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "user not found")
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 20002, "a user with this email already exists")
		case errors.Is(err, service.ErrDepartmentRequired):
			response.BadRequest(c, 20003, "department is required for faculty members")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// Delete removes a staff account.
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ListFacultyByDepartment returns one department's faculty members.
// GET /api/v1/faculty/department/:department
func (h *UserHandler) ListFacultyByDepartment(c *gin.Context) {
	faculty, err := h.userSvc.ListFacultyByDepartment(c.Request.Context(), c.Param("department"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, faculty)
}

// ListFaculty returns the faculty directory shown on the visitor entry
// form. The optional department query narrows the list.
// GET /api/v1/faculty
func (h *UserHandler) ListFaculty(c *gin.Context) {
	department := c.Query("department")

	var (
		faculty []dto.UserResponse
		err     error
	)
	if department != "" {
		faculty, err = h.userSvc.ListFacultyByDepartment(c.Request.Context(), department)
	} else {
		faculty, err = h.userSvc.ListFaculty(c.Request.Context())
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, faculty)
}
