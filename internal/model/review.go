package model

import "time"

// Review is a user's opinion of a book. There is at most one review per
// (ISBN, Username) pair; resubmitting overwrites Text, Rating and Date.
//
// Fields:
//  ID       – store assigned identifier.
//  ISBN     – book the review is about.
//  Username – author of the review.
//  Text     – review body, serialised as "review".
//  Rating   – integer score between MinRating and MaxRating.
//  Date     – UTC time of the last write.
type Review struct {
	ID       uint64    `json:"id"`
	ISBN     string    `json:"isbn"`
	Username string    `json:"username"`
	Text     string    `json:"review"`
	Rating   int       `json:"rating"`
	Date     time.Time `json:"date"`
}

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// DeletedReviewRef identifies a review that has just been removed.
type DeletedReviewRef struct {
	ID       uint64 `json:"id"`
	ISBN     string `json:"isbn"`
	Username string `json:"username"`
}
