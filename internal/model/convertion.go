package model

import (
	"database/sql"

	"github.com/pngfun/backend/internal/entity"
	"github.com/shopspring/decimal"
)

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	return &s.String
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:                   user.ID,
		WalletAddress:        user.WalletAddress,
		Username:             nullString(user.Username),
		ProfilePictureURL:    user.ProfilePictureURL,
		TotalWins:            user.TotalWins,
		CurrentStreak:        user.CurrentStreak,
		TotalWLDEarned:       user.TotalWLDEarned,
		WorldIDVerified:      user.WorldIDVerified,
		VerificationLevel:    user.VerificationLevel,
		OnboardingCompleted:  user.OnboardingCompleted,
		NotificationsEnabled: user.NotificationsEnabled,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}

func ConvertShortUser(user *entity.User) *ShortUser {
	if user == nil || user.ID == "" {
		return nil
	}

	return &ShortUser{
		Username:          nullString(user.Username),
		ProfilePictureURL: user.ProfilePictureURL,
	}
}

func ConvertChallenge(challenge *entity.Challenge, prizePool decimal.Decimal) Challenge {
	if challenge == nil {
		return Challenge{}
	}

	return Challenge{
		ID:          challenge.ID,
		Title:       challenge.Title,
		Description: challenge.Description,
		StartTime:   challenge.StartTime,
		EndTime:     challenge.EndTime,
		Status:      string(challenge.Status),
		CreatedAt:   challenge.CreatedAt,
		PrizePool:   prizePool,
	}
}

func ConvertSubmission(submission *entity.Submission) Submission {
	if submission == nil {
		return Submission{}
	}

	var rank *int64
	if submission.Rank.Valid {
		rank = &submission.Rank.Int64
	}

	return Submission{
		ID:            submission.ID,
		ChallengeID:   submission.ChallengeID,
		UserID:        submission.UserID,
		PhotoURL:      submission.PhotoURL,
		VoteCount:     submission.VoteCount,
		TotalWLDVoted: submission.TotalWLDVoted,
		Rank:          rank,
		Verified:      submission.Verified,
		CreatedAt:     submission.CreatedAt,
		User:          ConvertShortUser(&submission.User),
	}
}

func ConvertVote(vote *entity.Vote) Vote {
	if vote == nil {
		return Vote{}
	}

	return Vote{
		ID:               vote.ID,
		SubmissionID:     vote.SubmissionID,
		VoterID:          vote.VoterID,
		WLDAmount:        vote.WLDAmount,
		Status:           string(vote.Status),
		PaymentReference: nullString(vote.PaymentReference),
		TxHash:           nullString(vote.TxHash),
		CreatedAt:        vote.CreatedAt,
	}
}

func ConvertLeaderboardEntry(rank int, user *entity.User) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:              rank,
		WalletAddress:     user.WalletAddress,
		Username:          nullString(user.Username),
		ProfilePictureURL: user.ProfilePictureURL,
		TotalWins:         user.TotalWins,
		CurrentStreak:     user.CurrentStreak,
		TotalWLDEarned:    user.TotalWLDEarned,
	}
}
