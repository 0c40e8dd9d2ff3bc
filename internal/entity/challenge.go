package entity

import (
	"time"

	"github.com/pngfun/backend/pkg/enum"
)

type ChallengeStatus string

var (
	ChallengeActive    = enum.New(ChallengeStatus("active"))
	ChallengeVoting    = enum.New(ChallengeStatus("voting"))
	ChallengeCompleted = enum.New(ChallengeStatus("completed"))
)

type Challenge struct {
	Base

	Title       string
	Description string
	StartTime   time.Time       `gorm:"index"`
	EndTime     time.Time       `gorm:"index"`
	Status      ChallengeStatus `gorm:"index;not null;default:active"`
}
