package model

type CreateVoteRequest struct {
	SubmissionID     string `json:"submissionId"`
	VoterID          string `json:"voterId"`
	WLDAmount        Amount `json:"wldAmount"`
	PaymentReference string `json:"paymentReference"`
	TransactionID    string `json:"transactionId"`
}

type CreateVoteResponse struct {
	Vote Vote `json:"vote"`
}

type GetListVoteRequest struct {
	VoterID      string `json:"voterId" form:"voterId"`
	SubmissionID string `json:"submissionId" form:"submissionId"`
	Status       string `json:"status" form:"status"`
}

type GetListVoteResponse struct {
	Votes []Vote `json:"votes"`
}
