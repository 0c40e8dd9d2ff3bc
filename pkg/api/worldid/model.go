package worldid

import "fmt"

type Proof struct {
	Proof             string
	MerkleRoot        string
	NullifierHash     string
	VerificationLevel string
}

type Result struct {
	Success           bool   `json:"success"`
	Action            string `json:"action"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
	Uses              int    `json:"uses"`
}

// RejectedError is returned when the developer portal refuses a proof.
type RejectedError struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	Attribute string `json:"attribute"`
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("proof rejected (%s)", e.Code)
	}

	return fmt.Sprintf("%s (%s)", e.Detail, e.Code)
}
