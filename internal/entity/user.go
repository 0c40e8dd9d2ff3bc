package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type User struct {
	Base

	WalletAddress     string         `gorm:"uniqueIndex;not null"`
	Username          sql.NullString `gorm:"uniqueIndex"`
	ProfilePictureURL string

	TotalWins      int
	CurrentStreak  int
	TotalWLDEarned decimal.Decimal `gorm:"type:decimal(36,18);not null;default:0"`

	WorldIDVerified   bool
	WorldIDNullifier  sql.NullString `gorm:"uniqueIndex"`
	VerificationLevel string

	OnboardingCompleted  bool
	NotificationsEnabled bool
}
