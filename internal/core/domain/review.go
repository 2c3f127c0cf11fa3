package domain

import "time"

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// ValidScore reports whether score is inside [MinScore, MaxScore].
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Review is one user's opinion on one title. The (AuthorID, TitleID) pair is
// unique and immutable: a compound storage index rejects a second review by
// the same author, and updates may change text and score only.
type Review struct {
	ID             string    `json:"id"`
	TitleID        string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	Score          int       `json:"score"`
	PubDate        time.Time `json:"pub_date"`
}

// Comment is a reply to a review.
type Comment struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	PubDate        time.Time `json:"pub_date"`
}
