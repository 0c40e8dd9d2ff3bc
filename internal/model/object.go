package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// WLD amounts are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID                   string          `json:"id"`
	WalletAddress        string          `json:"wallet_address"`
	Username             *string         `json:"username"`
	ProfilePictureURL    string          `json:"profile_picture_url"`
	TotalWins            int             `json:"total_wins"`
	CurrentStreak        int             `json:"current_streak"`
	TotalWLDEarned       decimal.Decimal `json:"total_wld_earned"`
	WorldIDVerified      bool            `json:"world_id_verified"`
	VerificationLevel    string          `json:"verification_level,omitempty"`
	OnboardingCompleted  bool            `json:"onboarding_completed"`
	NotificationsEnabled bool            `json:"notifications_enabled"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ShortUser is the part of a user shown next to a submission.
type ShortUser struct {
	Username          *string `json:"username"`
	ProfilePictureURL string  `json:"profile_picture_url"`
}

type Challenge struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	PrizePool   decimal.Decimal `json:"prize_pool"`
}

type Submission struct {
	ID            string          `json:"id"`
	ChallengeID   string          `json:"challenge_id"`
	UserID        string          `json:"user_id"`
	PhotoURL      string          `json:"photo_url"`
	VoteCount     int             `json:"vote_count"`
	TotalWLDVoted decimal.Decimal `json:"total_wld_voted"`
	Rank          *int64          `json:"rank"`
	Verified      bool            `json:"verified"`
	CreatedAt     time.Time       `json:"created_at"`
	User          *ShortUser      `json:"user,omitempty"`
}

type Vote struct {
	ID               string          `json:"id"`
	SubmissionID     string          `json:"submission_id"`
	VoterID          string          `json:"voter_id"`
	WLDAmount        decimal.Decimal `json:"wld_amount"`
	Status           string          `json:"status"`
	PaymentReference *string         `json:"payment_reference"`
	TxHash           *string         `json:"tx_hash"`
	CreatedAt        time.Time       `json:"created_at"`
}

type LeaderboardEntry struct {
	Rank              int             `json:"rank"`
	WalletAddress     string          `json:"wallet_address"`
	Username          *string         `json:"username"`
	ProfilePictureURL string          `json:"profile_picture_url"`
	TotalWins         int             `json:"total_wins"`
	CurrentStreak     int             `json:"current_streak"`
	TotalWLDEarned    decimal.Decimal `json:"total_wld_earned"`
}
