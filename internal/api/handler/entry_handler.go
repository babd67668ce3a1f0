package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/internal/workflow"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// EntryHandler serves the entry-exit workflow. Each method returns a
// gin.HandlerFunc bound to one record kind, so the visitor and student
// route groups share one implementation.
type EntryHandler struct {
	entrySvc service.EntryService
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entrySvc service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// Register records an arrival at the gate.
// POST /api/v1/{visitors,students}/entry
func (h *EntryHandler) Register(kind model.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.EntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "validation failed")
			return
		}

		created, err := h.entrySvc.Register(c.Request.Context(), kind, &req)
		if err != nil {
			writeEntryError(c, err)
			return
		}

		response.Created(c, created)
	}
}

// RequestExit moves the active record to the requested state.
// POST /api/v1/{visitors,students}/request-exit
func (h *EntryHandler) RequestExit(kind model.EntryKind) gin.HandlerFunc {
	return h.transition(kind, h.entrySvc.RequestExit)
}

// ApproveExit moves the active record to the approved state.
// POST /api/v1/{visitors,students}/approve-exit
func (h *EntryHandler) ApproveExit(kind model.EntryKind) gin.HandlerFunc {
	return h.transition(kind, h.entrySvc.ApproveExit)
}

// ConfirmExit finalizes the exit at the gate.
// POST /api/v1/{visitors,students}/confirm-exit
func (h *EntryHandler) ConfirmExit(kind model.EntryKind) gin.HandlerFunc {
	return h.transition(kind, h.entrySvc.ConfirmExit)
}

// Active returns the active record for one identity.
// GET /api/v1/{visitors,students}/active/:identity
func (h *EntryHandler) Active(kind model.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := h.entrySvc.GetActiveByIdentity(c.Request.Context(), kind, c.Param("identity"))
		if err != nil {
			writeEntryError(c, err)
			return
		}
		response.OK(c, rec)
	}
}

// Pending lists records waiting for approval. Faculty members only see
// the visitors destined for them.
// GET /api/v1/{visitors,students}/pending-exits
func (h *EntryHandler) Pending(kind model.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := MustGetRole(c)
		if !ok {
			return
		}

		facultyID := ""
		if kind == model.KindVisitor && role == model.RoleFaculty {
			userID, ok := MustGetUserID(c)
			if !ok {
				return
			}
			facultyID = userID
		}

		recs, err := h.entrySvc.ListPending(c.Request.Context(), kind, facultyID)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, recs)
	}
}

// Approved lists records cleared for the gate.
// GET /api/v1/{visitors,students}/approved-exits
func (h *EntryHandler) Approved(kind model.EntryKind) gin.HandlerFunc {
	return h.list(kind, h.entrySvc.ListApproved)
}

// Daily lists today's entries.
// GET /api/v1/{visitors,students}/daily-records
func (h *EntryHandler) Daily(kind model.EntryKind) gin.HandlerFunc {
	return h.list(kind, h.entrySvc.DailyRecords)
}

// ExitedToday lists today's completed exits.
// GET /api/v1/{visitors,students}/exited-today
func (h *EntryHandler) ExitedToday(kind model.EntryKind) gin.HandlerFunc {
	return h.list(kind, h.entrySvc.ExitedToday)
}

// Get returns one record by its ID, any kind.
// GET /api/v1/admin/entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	rec, err := h.entrySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEntryError(c, err)
		return
	}
	response.OK(c, rec)
}

// Delete removes one record by its ID.
// DELETE /api/v1/admin/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.entrySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeEntryError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── shared plumbing ──

type transitionFunc func(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error)

func (h *EntryHandler) transition(kind model.EntryKind, fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.IdentityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "validation failed")
			return
		}

		rec, err := fn(c.Request.Context(), kind, req.Identity)
		if err != nil {
			writeEntryError(c, err)
			return
		}

		response.OK(c, rec)
	}
}

type listFunc func(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error)

func (h *EntryHandler) list(kind model.EntryKind, fn listFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := fn(c.Request.Context(), kind)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, recs)
	}
}

// writeEntryError maps workflow and entry errors onto the response
// envelope.
func writeEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 30001, "no active entry found for this identity")
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 30002, "entry record not found")
	case errors.Is(err, service.ErrActiveEntryExists):
		response.Conflict(c, 30003, "an active entry already exists for this identity")
	case errors.Is(err, service.ErrFacultyRequired):
		response.BadRequest(c, 30004, "department and faculty are required for visitor entry")
	case errors.Is(err, service.ErrFacultyNotFound):
		response.BadRequest(c, 30005, "selected faculty member does not exist")
	case errors.Is(err, workflow.ErrAlreadyRequested):
		response.Conflict(c, 31001, "exit has already been requested")
	case errors.Is(err, workflow.ErrNotRequested):
		response.Conflict(c, 31002, "exit has not been requested")
	case errors.Is(err, workflow.ErrAlreadyApproved):
		response.Conflict(c, 31003, "exit has already been approved")
	case errors.Is(err, workflow.ErrNotApproved):
		response.Conflict(c, 31004, "exit has not been approved")
	case errors.Is(err, workflow.ErrAlreadyExited):
		response.Conflict(c, 31005, "this entry has already exited")
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, 31006, "entry was modified by a concurrent operation")
	default:
		response.InternalError(c)
	}
}
