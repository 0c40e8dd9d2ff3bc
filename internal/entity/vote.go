package entity

import (
	"database/sql"

	"github.com/pngfun/backend/pkg/enum"
	"github.com/shopspring/decimal"
)

type VoteStatus string

var (
	VoteActive = enum.New(VoteStatus("active"))
	VoteWon    = enum.New(VoteStatus("won"))
	VoteLost   = enum.New(VoteStatus("lost"))
)

type Vote struct {
	Base

	SubmissionID string     `gorm:"not null;index;uniqueIndex:idx_votes_submission_voter,priority:1"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`

	VoterID string `gorm:"not null;index;uniqueIndex:idx_votes_submission_voter,priority:2"`
	Voter   User   `gorm:"foreignKey:VoterID"`

	WLDAmount        decimal.Decimal `gorm:"type:decimal(36,18);not null"`
	Status           VoteStatus      `gorm:"index;not null;default:active"`
	PaymentReference sql.NullString
	TxHash           sql.NullString
}
