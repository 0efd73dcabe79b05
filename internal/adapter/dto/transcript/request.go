package transcript

// SubmitTranscriptRequest submits a recorded call for transcription
type SubmitTranscriptRequest struct {
	AudioURL string `json:"audio_url" validate:"required,url"`
}
