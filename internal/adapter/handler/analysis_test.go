package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/errors"
	analysisuc "github.com/callsight-ai/callsight/internal/usecase/analysis"
	"github.com/callsight-ai/callsight/pkg/llm"
)

func TestMapErrorTranscriptMissing(t *testing.T) {
	h := &Analysis{logger: zap.NewNop()}
	id := uuid.New()

	mapped := h.mapError(id, analysisuc.ErrTranscriptMissing)

	var appErr errors.AppError
	if !stdErrors.As(mapped, &appErr) {
		t.Fatalf("expected AppError, got %T", mapped)
	}
	if appErr.HTTPCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", appErr.HTTPCode)
	}
	if appErr.Code != errors.ErrorCode_TRANSCRIPT_NOT_FOUND {
		t.Errorf("unexpected app code: %v", appErr.Code)
	}
}

func TestMapErrorTranscriptIncomplete(t *testing.T) {
	h := &Analysis{logger: zap.NewNop()}
	id := uuid.New()
	err := fmt.Errorf("%w: status processing", analysisuc.ErrTranscriptIncomplete)

	mapped := h.mapError(id, err)

	var appErr errors.AppError
	if !stdErrors.As(mapped, &appErr) {
		t.Fatalf("expected AppError, got %T", mapped)
	}
	if appErr.Code != errors.ErrorCode_TRANSCRIPT_NOT_READY {
		t.Errorf("unexpected app code: %v", appErr.Code)
	}
	if got := appErr.Details["status"]; got != "processing" {
		t.Errorf("expected status detail %q, got %q", "processing", got)
	}
}

func TestMapErrorDispatchExhausted(t *testing.T) {
	h := &Analysis{logger: zap.NewNop()}
	exhausted := &llm.DispatchExhaustedError{
		Task:       llm.TaskSentimentAnalysis,
		Candidates: []string{"gpt-4o-mini", "gemini-flash"},
		LastErr:    fmt.Errorf("upstream timeout"),
	}

	mapped := h.mapError(uuid.New(), fmt.Errorf("sentiment failed: %w", exhausted))

	var appErr errors.AppError
	if !stdErrors.As(mapped, &appErr) {
		t.Fatalf("expected AppError, got %T", mapped)
	}
	if appErr.HTTPCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", appErr.HTTPCode)
	}
	if appErr.Code != errors.ErrorCode_DISPATCH_EXHAUSTED {
		t.Errorf("unexpected app code: %v", appErr.Code)
	}
}

func TestMapErrorUnknownModel(t *testing.T) {
	h := &Analysis{logger: zap.NewNop()}

	mapped := h.mapError(uuid.New(), &llm.UnknownModelError{Key: "gpt-9"})

	var appErr errors.AppError
	if !stdErrors.As(mapped, &appErr) {
		t.Fatalf("expected AppError, got %T", mapped)
	}
	if appErr.Code != errors.ErrorCode_UNKNOWN_MODEL {
		t.Errorf("unexpected app code: %v", appErr.Code)
	}
}

func TestHandleErrorWritesAppErrorBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/transcripts/x/analysis", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := HandleError(zap.NewNop(), c, errors.ErrAnalysisNotFound("abc")); err != nil {
		t.Fatalf("HandleError returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Analysis not found") {
		t.Errorf("expected error message in body, got %s", rec.Body.String())
	}
}

func TestHandleSuccessWrapsData(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := HandleSuccess(zap.NewNop(), c, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("HandleSuccess returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"data"`) || !strings.Contains(body, `"world"`) {
		t.Errorf("unexpected body: %s", body)
	}
}
