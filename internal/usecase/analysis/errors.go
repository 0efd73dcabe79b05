package analysis

import "errors"

var (
	// ErrTranscriptMissing is returned when no transcript exists for the
	// requested ID.
	ErrTranscriptMissing = errors.New("transcript not found")

	// ErrTranscriptIncomplete is returned when analysis is requested before
	// transcription finished.
	ErrTranscriptIncomplete = errors.New("transcript is not completed")
)
