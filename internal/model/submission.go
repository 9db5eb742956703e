package model

type Submission struct {
	ID           string `json:"id"`
	TaskID       string `json:"task_id"`
	UserID       string `json:"user_id"`
	ProofURL     string `json:"proof_url"`
	Status       string `json:"status"`
	ReviewReason string `json:"review_reason,omitempty"`
	CreatedAt    string `json:"created_at"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
}

type SubmitProofRequest struct {
	// The proof image arrives as the multipart part named "proof".
	TaskID string `json:"task_id"`
}

type SubmitProofResponse struct {
	ID       string `json:"id"`
	ProofURL string `json:"proof_url"`
	Status   string `json:"status"`
}

type GetMySubmissionsRequest struct{}

type GetMySubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type GetPendingSubmissionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPendingSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type ReviewSubmissionRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type ReviewSubmissionResponse struct{}

type SetProofIntentRequest struct {
	TaskID string `json:"task_id"`
}

type SetProofIntentResponse struct{}

type CancelProofIntentRequest struct{}

type CancelProofIntentResponse struct{}
