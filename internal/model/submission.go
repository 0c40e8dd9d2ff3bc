package model

type CreateSubmissionRequest struct {
	ChallengeID string `json:"challengeId"`
	UserID      string `json:"userId"`
	PhotoData   string `json:"photoData"`
}

type CreateSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type GetListSubmissionRequest struct {
	ChallengeID string `json:"challengeId" form:"challengeId"`
}

type GetListSubmissionResponse struct {
	Submissions []Submission `json:"submissions"`
}

type CheckSubmissionRequest struct {
	UserID      string `json:"userId" form:"userId"`
	ChallengeID string `json:"challengeId" form:"challengeId"`
}

type CheckSubmissionResponse struct {
	Exists     bool        `json:"exists"`
	Submission *Submission `json:"submission"`
}
