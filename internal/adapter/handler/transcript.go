package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/errors"
	transcriptdto "github.com/callsight-ai/callsight/internal/adapter/dto/transcript"
	transcriptuc "github.com/callsight-ai/callsight/internal/usecase/transcript"
)

// Transcript exposes transcript ingestion endpoints
type Transcript struct {
	svc    *transcriptuc.Service
	logger *zap.Logger
}

// NewTranscript creates the transcript handler
func NewTranscript(svc *transcriptuc.Service, logger *zap.Logger) *Transcript {
	return &Transcript{svc: svc, logger: logger}
}

// Submit queues a recorded call for transcription
func (h *Transcript) Submit(c echo.Context) error {
	var req transcriptdto.SubmitTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.svc.Submit(c.Request().Context(), req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, created)
}

// Get returns a transcript with its utterances
func (h *Transcript) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid transcript id"))
	}

	found, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, transcriptuc.ErrNotFound) {
			return HandleError(h.logger, c, errors.ErrTranscriptNotFound(id.String()))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, found)
}
