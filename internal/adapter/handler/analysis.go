package handler

import (
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/errors"
	analysisdto "github.com/callsight-ai/callsight/internal/adapter/dto/analysis"
	analysisuc "github.com/callsight-ai/callsight/internal/usecase/analysis"
	"github.com/callsight-ai/callsight/pkg/llm"
)

// Analysis exposes the comprehensive call analysis endpoints
type Analysis struct {
	svc    *analysisuc.Service
	logger *zap.Logger
}

// NewAnalysis creates the analysis handler
func NewAnalysis(svc *analysisuc.Service, logger *zap.Logger) *Analysis {
	return &Analysis{svc: svc, logger: logger}
}

// Run executes the comprehensive analysis for a completed transcript
func (h *Analysis) Run(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid transcript id"))
	}

	var req analysisdto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.RunComprehensive(c.Request().Context(), id, llm.Plan(req.Plan), req.CompanyID, req.Industry)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(id, err))
	}
	return HandleSuccess(h.logger, c, result)
}

// Get returns a previously stored analysis
func (h *Analysis) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid transcript id"))
	}

	result, err := h.svc.GetStored(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if result == nil {
		return HandleError(h.logger, c, errors.ErrAnalysisNotFound(id.String()))
	}
	return HandleSuccess(h.logger, c, result)
}

// mapError translates usecase failures into HTTP-level errors
func (h *Analysis) mapError(transcriptID uuid.UUID, err error) error {
	if stdErrors.Is(err, analysisuc.ErrTranscriptMissing) {
		return errors.ErrTranscriptNotFound(transcriptID.String())
	}
	if stdErrors.Is(err, analysisuc.ErrTranscriptIncomplete) {
		status := strings.TrimPrefix(err.Error(), analysisuc.ErrTranscriptIncomplete.Error()+": status ")
		return errors.ErrTranscriptNotReady(transcriptID.String(), status)
	}

	var unknownModel *llm.UnknownModelError
	if stdErrors.As(err, &unknownModel) {
		return errors.ErrUnknownModel(unknownModel.Key)
	}
	var exhausted *llm.DispatchExhaustedError
	if stdErrors.As(err, &exhausted) {
		return errors.ErrDispatchExhausted(string(exhausted.Task), err)
	}

	return errors.ErrAnalysisFailed(err)
}
