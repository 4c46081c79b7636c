package dto

// CreateReviewRequest is the body of POST /reviews.
type CreateReviewRequest struct {
	Business string `json:"business"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}
