package model

type GetActiveChallengeRequest struct{}

type GetActiveChallengeResponse struct {
	Challenge *Challenge `json:"challenge"`
	Message   string     `json:"message,omitempty"`
}

type GetChallengeRequest struct {
	ID string `json:"id" form:"id"`
}

type GetChallengeResponse struct {
	Challenge Challenge `json:"challenge"`
}
