package api

// StartSessionRequest is the body of POST /api/review/sessions. An empty
// topic path reviews every deck.
type StartSessionRequest struct {
	TopicPath string `json:"topic_path" validate:"max=1024"`
}

// AnswerRequest is the body of POST /api/review/answer.
type AnswerRequest struct {
	Response string `json:"response" validate:"required,oneof=easy good hard reset"`
}

// ReviewNoteRequest is the body of POST /api/notes/review.
type ReviewNoteRequest struct {
	Path     string `json:"path"     validate:"required,max=4096"`
	Response string `json:"response" validate:"required,oneof=easy good hard reset"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
