package domain

import "time"

// MaxCommentLength bounds a review comment, in characters.
const MaxCommentLength = 500

// Review is a user's rating of a product.
type Review struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	User      UserRef   `json:"user"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewInput is the create payload.
type ReviewInput struct {
	Product string  `json:"product"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
