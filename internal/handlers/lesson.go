package handlers

import (
	"net/http"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type LessonHandler struct {
	lessons LessonServiceInterface
}

func NewLessonHandler(lessons LessonServiceInterface) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

func (h *LessonHandler) Request(c *drift.Context) {
	var req dto.RequestLessonRequest
	if !newInput(c, h.lessons).bind(&req) {
		return
	}

	lesson, err := h.lessons.Request(c.Request.Context(), services.LessonRequest{
		CounterpartUserID: req.CounterpartUserID,
		StartAt:           req.StartAt,
		DurationMinutes:   req.DurationMinutes,
		Note:              req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) Cancel(c *drift.Context) {
	in := newInput(c, h.lessons)
	lessonID, ok := in.pathID("lessonId")
	if !ok {
		return
	}
	var req dto.CancelLessonRequest
	if !in.bindOptional(&req) {
		return
	}

	lesson, err := h.lessons.Cancel(c.Request.Context(), lessonID, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) Respond(c *drift.Context) {
	in := newInput(c, h.lessons, models.RolePlayer)
	lessonID, ok := in.pathID("lessonId")
	if !ok {
		return
	}
	var req dto.RespondInviteRequest
	if !in.bind(&req) {
		return
	}

	lesson, err := h.lessons.RespondToInvite(c.Request.Context(), lessonID, *req.Accept)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) SetParticipant(c *drift.Context) {
	in := newInput(c, h.lessons, models.RoleCoach)
	lessonID, ok := in.pathID("lessonId")
	if !ok {
		return
	}
	playerUserID, ok := in.pathID("playerUserId")
	if !ok {
		return
	}
	var req dto.SetParticipantRequest
	if !in.bind(&req) {
		return
	}

	p, err := h.lessons.SetParticipantPresence(c.Request.Context(), lessonID, playerUserID, *req.Present)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, p)
}
