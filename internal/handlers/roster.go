package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type RosterHandler struct {
	roster  RosterServiceInterface
	baseURL string
}

func NewRosterHandler(roster RosterServiceInterface, baseURL string) *RosterHandler {
	return &RosterHandler{
		roster:  roster,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ClaimURL is the page a player opens to claim their account.
func ClaimURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/claim/" + token
}

func (h *RosterHandler) RotateAccessCode(c *drift.Context) {
	ac, err := h.roster.RotateAccessCode(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, ac)
}

func (h *RosterHandler) PreviewAccessCode(c *drift.Context) {
	preview, err := h.roster.PreviewTeamFromAccessCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, preview)
}

func (h *RosterHandler) Join(c *drift.Context) {
	// Joining needs no profile, and the auth middleware has already
	// authenticated the user.
	var req dto.JoinTeamRequest
	if !newInput(c, nil).bind(&req) {
		return
	}

	p, err := h.roster.JoinTeamWithAccessCode(c.Request.Context(), req.Code, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusCreated, p)
}

func (h *RosterHandler) IssueClaimToken(c *drift.Context) {
	in := newInput(c, h.roster, models.RoleCoach)
	playerID, ok := in.pathID("playerId")
	if !ok {
		return
	}
	var req dto.IssueClaimTokenRequest
	if !in.bindOptional(&req) {
		return
	}

	ct, err := h.roster.IssueClaimToken(c.Request.Context(), playerID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusCreated, dto.ClaimTokenResponse{
		Token:     ct.Token,
		ClaimURL:  ClaimURL(h.baseURL, ct.Token),
		PlayerID:  ct.PlayerID,
		ExpiresAt: ct.ExpiresAt,
	})
}

func (h *RosterHandler) PreviewClaim(c *drift.Context) {
	preview, err := h.roster.PreviewClaim(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.ClaimPreviewResponse{
		PlayerName: preview.PlayerName,
		TeamName:   preview.TeamName,
		CoachName:  preview.CoachName,
		ExpiresAt:  preview.ExpiresAt,
		IsExpired:  preview.IsExpired,
		IsClaimed:  preview.IsClaimed,
		IsValid:    preview.IsValid,
	})
}

func (h *RosterHandler) Claim(c *drift.Context) {
	p, err := h.roster.ClaimAccount(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, p)
}

func (h *RosterHandler) SetPlayerActive(c *drift.Context) {
	in := newInput(c, h.roster, models.RoleCoach)
	userID, ok := in.pathID("userId")
	if !ok {
		return
	}
	var req dto.SetPlayerActiveRequest
	if !in.bind(&req) {
		return
	}

	p, err := h.roster.SetPlayerActive(c.Request.Context(), userID, *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, p)
}
