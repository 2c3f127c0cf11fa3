package handler

// Score bounds live in the domain; only presence is checked here so that
// out-of-range scores surface as the dedicated invalid-score error.
type reviewRequest struct {
	Text  string `json:"text"  validate:"required"`
	Score int    `json:"score"`
}

type patchReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}
