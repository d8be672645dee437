package analyses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/agent"
	"resume-agent/internal/bootstrap"
	"resume-agent/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:             "0",
		CORSAllowOrigins: []string{"http://localhost:5173"},
		DataDir:          t.TempDir(),
		LLMTimeout:       time.Second,
		LLMRetries:       0,
		LLMBaseDelay:     time.Millisecond,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func TestAnalyzeTextLocalFallback(t *testing.T) {
	app := buildApp(t)

	body := `{"text":"Jane Doe. Engineer. Skilled in X.","kind":"resume"}`
	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Summary     string `json:"summary"`
		InputLength int    `json:"inputLength"`
		Engine      string `json:"engine"`
		Timestamp   string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Summary != "Jane Doe. Engineer. Skilled in X." {
		t.Fatalf("expected sentence-joined summary, got %q", result.Summary)
	}
	if result.Engine != "local-fallback" {
		t.Fatalf("expected local-fallback engine without credential, got %q", result.Engine)
	}
	if result.InputLength != len("Jane Doe. Engineer. Skilled in X.") {
		t.Fatalf("unexpected inputLength %d", result.InputLength)
	}
	if _, err := time.Parse(time.RFC3339, result.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", result.Timestamp)
	}
}

func TestAnalyzeMissingText(t *testing.T) {
	app := buildApp(t)

	for _, body := range []string{`{}`, `{"text":""}`, `{"text":"   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode error envelope: %v", err)
		}
		if envelope.Error.Code != "validation_error" {
			t.Fatalf("expected validation_error code, got %q", envelope.Error.Code)
		}
	}
}

// onePagePDF assembles a minimal PDF with the given text as its only page
// content, computing xref offsets from the actual object positions. The text
// must not contain parentheses or backslashes.
func onePagePDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	writeObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	xref := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref))
	return buf.Bytes()
}

func TestAnalyzeUploadStoresRecordAndAnswersChat(t *testing.T) {
	app := buildApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "jane-doe-resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	pdfText := "Jane Doe is a senior backend engineer with Go experience."
	if _, err := fileWriter.Write(onePagePDF(t, pdfText)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("kind", "resume"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Summary     string `json:"summary"`
		InputLength int    `json:"inputLength"`
		Engine      string `json:"engine"`
		PDFInfo     *struct {
			PageCount   int    `json:"pageCount"`
			ExtractedAt string `json:"extractedAt"`
		} `json:"pdfInfo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(result.Summary, "Jane Doe") {
		t.Fatalf("expected summary from the page text, got %q", result.Summary)
	}
	if result.Engine != "local-fallback" {
		t.Fatalf("expected local-fallback engine without credential, got %q", result.Engine)
	}
	if result.InputLength == 0 {
		t.Fatal("expected non-zero inputLength")
	}
	if result.PDFInfo == nil || result.PDFInfo.PageCount != 1 {
		t.Fatalf("expected pdfInfo with 1 page, got %+v", result.PDFInfo)
	}
	if _, err := time.Parse(time.RFC3339, result.PDFInfo.ExtractedAt); err != nil {
		t.Fatalf("extractedAt not RFC3339: %q", result.PDFInfo.ExtractedAt)
	}

	rec, err := app.Resumes.Load(context.Background())
	if err != nil {
		t.Fatalf("expected stored record after upload: %v", err)
	}
	if !strings.Contains(rec.ExtractedText, "Jane Doe") {
		t.Fatalf("stored record should carry the extracted text, got %q", rec.ExtractedText)
	}
	if rec.FileName != "jane-doe-resume.pdf" {
		t.Fatalf("unexpected stored file name %q", rec.FileName)
	}
	if rec.PageCount != 1 {
		t.Fatalf("expected stored page count 1, got %d", rec.PageCount)
	}

	chatReq := httptest.NewRequest(http.MethodPost, "/api/agent/chat",
		strings.NewReader(`{"message":"What is the candidate experienced in?"}`))
	chatReq.Header.Set("Content-Type", "application/json")
	chatResp := httptest.NewRecorder()
	app.Router.ServeHTTP(chatResp, chatReq)

	if chatResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from chat after upload, got %d: %s", chatResp.Code, chatResp.Body.String())
	}
	var chatBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(chatResp.Body).Decode(&chatBody); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if chatBody.Response != agent.NotAvailable {
		t.Fatalf("expected sentinel without a backend, got %q", chatBody.Response)
	}
}

func TestAnalyzeUploadRejectsNonPDF(t *testing.T) {
	app := buildApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text, not a pdf")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-PDF upload, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAnalyzeUploadMissingFile(t *testing.T) {
	app := buildApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("kind", "resume"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", resp.Code)
	}
}

func TestHealth(t *testing.T) {
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", resp.Body.String())
	}
}
