package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/extract"
	"resume-agent/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires the analyze endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/analyze", h.analyze)
}

type analyzeRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// analyze accepts either a JSON body with raw resume text or a multipart
// upload with a PDF file field.
func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.analyzePDF(c)
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing or invalid 'text' in body", nil)
		return
	}

	respond.OK(c, h.Svc.AnalyzeText(c.Request.Context(), req.Text, req.Kind))
}

func (h *Handler) analyzePDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	kind := c.PostForm("kind")
	result, err := h.Svc.AnalyzePDF(c.Request.Context(), data, fileHeader.Filename, kind)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF files are allowed", nil)
		case errors.Is(err, ErrTextTooShort):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		}
		return
	}

	respond.OK(c, result)
}
