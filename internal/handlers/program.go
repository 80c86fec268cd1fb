package handlers

import (
	"net/http"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProgramHandler struct {
	programs ProgramServiceInterface
}

func NewProgramHandler(programs ProgramServiceInterface) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

func (h *ProgramHandler) Enroll(c *drift.Context) {
	var req dto.EnrollRequest
	if !newInput(c, h.programs, models.RoleCoach).bind(&req) {
		return
	}
	var startAt time.Time
	if req.StartAt != nil {
		startAt = *req.StartAt
	}

	e, err := h.programs.Enroll(c.Request.Context(), req.TemplateID, req.PlayerUserID, startAt)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusCreated, e)
}

func (h *ProgramHandler) SetEnrollmentStatus(c *drift.Context) {
	in := newInput(c, h.programs, models.RoleCoach)
	enrollmentID, ok := in.pathID("enrollmentId")
	if !ok {
		return
	}
	var req dto.SetEnrollmentStatusRequest
	if !in.bind(&req) {
		return
	}

	e, err := h.programs.SetEnrollmentStatus(c.Request.Context(), enrollmentID, models.EnrollmentStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, e)
}

func (h *ProgramHandler) CompleteAssignment(c *drift.Context) {
	assignmentID, ok := newInput(c, h.programs, models.RolePlayer).pathID("assignmentId")
	if !ok {
		return
	}

	completion, err := h.programs.CompleteAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, completion)
}

func (h *ProgramHandler) ReviewSubmission(c *drift.Context) {
	in := newInput(c, h.programs, models.RoleCoach)
	submissionID, ok := in.pathID("submissionId")
	if !ok {
		return
	}
	var req dto.ReviewSubmissionRequest
	if !in.bindOptional(&req) {
		return
	}

	sub, err := h.programs.MarkSubmissionReviewed(c.Request.Context(), submissionID, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, sub)
}

func (h *ProgramHandler) CreateFocus(c *drift.Context) {
	var req dto.CreateFocusRequest
	if !newInput(c, h.programs, models.RoleCoach).bind(&req) {
		return
	}

	focus, err := h.programs.CreateFocus(c.Request.Context(), services.FocusInput{
		Name:        req.Name,
		Description: req.Description,
		Cues:        req.Cues,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusCreated, focus)
}

func (h *ProgramHandler) DeleteTemplateAssignment(c *drift.Context) {
	in := newInput(c, h.programs, models.RoleCoach)
	templateID, ok := in.pathID("templateId")
	if !ok {
		return
	}
	assignmentID, ok := in.pathID("assignmentId")
	if !ok {
		return
	}

	if err := h.programs.DeleteTemplateAssignment(c.Request.Context(), templateID, assignmentID); err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

func (h *ProgramHandler) DeleteDrillMedia(c *drift.Context) {
	mediaID, ok := newInput(c, h.programs, models.RoleCoach).pathID("mediaId")
	if !ok {
		return
	}

	if err := h.programs.DeleteDrillMedia(c.Request.Context(), mediaID); err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}
