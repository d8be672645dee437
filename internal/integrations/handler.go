package integrations

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/shared/server/respond"
)

// Handler exposes the Together summarization proxy.
type Handler struct {
	Together *TogetherClient
}

// NewHandler constructs a Handler.
func NewHandler(together *TogetherClient) *Handler {
	return &Handler{Together: together}
}

// RegisterRoutes attaches integration routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/llm/summarize", h.summarize)
}

type summarizeRequest struct {
	Input       string `json:"input"`
	Instruction string `json:"instruction"`
}

func (h *Handler) summarize(c *gin.Context) {
	if !h.Together.Enabled() {
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "LLM integration is not configured", nil)
		return
	}

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing or invalid 'input' in body", nil)
		return
	}

	output, err := h.Together.Summarize(c.Request.Context(), req.Input, req.Instruction)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", err.Error(), nil)
		return
	}

	respond.OK(c, gin.H{"output": output})
}
