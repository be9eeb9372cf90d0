package dto

// ContentRequest is the body of comment and tweet writes.
type ContentRequest struct {
	Content string `json:"content"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

type ToggleSubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}
