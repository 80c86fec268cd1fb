package handlers

import (
	"net/http"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ContentHandler struct {
	content ContentServiceInterface
}

func NewContentHandler(content ContentServiceInterface) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) Delete(c *drift.Context) {
	id, ok := newInput(c, h.content).pathID("contentId")
	if !ok {
		return
	}

	item, err := h.content.SoftDelete(c.Request.Context(), models.ContentKind(c.Param("kind")), id)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Restore(c *drift.Context) {
	id, ok := newInput(c, h.content).pathID("contentId")
	if !ok {
		return
	}

	item, err := h.content.Restore(c.Request.Context(), models.ContentKind(c.Param("kind")), id)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) TouchVideoSeen(c *drift.Context) {
	videoID, ok := newInput(c, h.content).pathID("videoId")
	if !ok {
		return
	}

	if err := h.content.TouchSeen(c.Request.Context(), videoID); err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

func (h *ContentHandler) TouchFeedSeen(c *drift.Context) {
	if err := h.content.TouchLastSeenFeed(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
