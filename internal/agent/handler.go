package agent

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/shared/server/respond"
)

// Handler wires the agent endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches agent routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/agent/chat", h.chat)
	rg.GET("/agent/roles", h.roles)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	answer, err := h.Svc.Chat(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrResumeNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found. Please upload a resume PDF first.", nil)
		case errors.Is(err, ErrResumeCorrupted):
			respond.Error(c, http.StatusUnprocessableEntity, "data_corruption", "Resume data is corrupted. Please re-upload your resume PDF.", nil)
		case errors.Is(err, ErrResumeEmpty):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Resume content appears to be empty or invalid. Please re-upload your resume PDF.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		}
		return
	}

	respond.OK(c, chatResponse{Response: answer})
}

func (h *Handler) roles(c *gin.Context) {
	respond.OK(c, gin.H{"roles": Roles})
}
