package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Submission struct {
	Base

	ChallengeID string    `gorm:"not null;index;uniqueIndex:idx_submissions_user_challenge,priority:2"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID string `gorm:"not null;uniqueIndex:idx_submissions_user_challenge,priority:1"`
	User   User   `gorm:"foreignKey:UserID"`

	PhotoURL      string
	VoteCount     int
	TotalWLDVoted decimal.Decimal `gorm:"type:decimal(36,18);not null;default:0"`
	Rank          sql.NullInt64
	Verified      bool
}

// SubmissionAggregate is the vote summary of one submission.
type SubmissionAggregate struct {
	SubmissionID  string
	VoteCount     int
	TotalWLDVoted decimal.Decimal
}
