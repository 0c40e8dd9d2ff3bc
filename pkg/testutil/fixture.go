package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	// Users
	User1 = &entity.User{
		Base:                entity.Base{ID: "user1"},
		WalletAddress:       "0x1000000000000000000000000000000000000001",
		Username:            sql.NullString{Valid: true, String: "alice"},
		ProfilePictureURL:   "https://cdn.png.fun/alice.png",
		TotalWins:           2,
		CurrentStreak:       1,
		TotalWLDEarned:      decimal.NewFromInt(5),
		WorldIDVerified:     true,
		WorldIDNullifier:    sql.NullString{Valid: true, String: "0xnullifier1"},
		VerificationLevel:   "orb",
		OnboardingCompleted: true,
	}

	User2 = &entity.User{
		Base:           entity.Base{ID: "user2"},
		WalletAddress:  "0x2000000000000000000000000000000000000002",
		Username:       sql.NullString{Valid: true, String: "bob"},
		TotalWins:      1,
		CurrentStreak:  1,
		TotalWLDEarned: decimal.NewFromInt(3),
	}

	User3 = &entity.User{
		Base:           entity.Base{ID: "user3"},
		WalletAddress:  "0x3000000000000000000000000000000000000003",
		Username:       sql.NullString{Valid: true, String: "carol"},
		TotalWLDEarned: decimal.Zero,
	}

	Users = []*entity.User{User1, User2, User3}

	// Challenges
	Challenge1 = &entity.Challenge{
		Base:        entity.Base{ID: "challenge1"},
		Title:       "Golden hour",
		Description: "Catch the last light of the day",
		StartTime:   time.Now().Add(-time.Hour),
		EndTime:     time.Now().Add(23 * time.Hour),
		Status:      entity.ChallengeActive,
	}

	Challenge2 = &entity.Challenge{
		Base:        entity.Base{ID: "challenge2"},
		Title:       "Street food",
		Description: "Your favourite snack in the wild",
		StartTime:   time.Now().Add(-26 * time.Hour),
		EndTime:     time.Now().Add(-2 * time.Hour),
		Status:      entity.ChallengeVoting,
	}

	Challenge3 = &entity.Challenge{
		Base:        entity.Base{ID: "challenge3"},
		Title:       "Reflections",
		Description: "Mirrors, puddles and windows",
		StartTime:   time.Now().Add(-72 * time.Hour),
		EndTime:     time.Now().Add(-48 * time.Hour),
		Status:      entity.ChallengeCompleted,
	}

	Challenges = []*entity.Challenge{Challenge1, Challenge2, Challenge3}

	// Submissions
	Submission1 = &entity.Submission{
		Base:          entity.Base{ID: "submission1", CreatedAt: time.Now().Add(-50 * time.Minute)},
		ChallengeID:   Challenge1.ID,
		UserID:        User1.ID,
		PhotoURL:      "https://cdn.png.fun/pngfun/user1/1.jpg",
		VoteCount:     1,
		TotalWLDVoted: decimal.RequireFromString("0.5"),
		Verified:      true,
	}

	Submission2 = &entity.Submission{
		Base:          entity.Base{ID: "submission2", CreatedAt: time.Now().Add(-40 * time.Minute)},
		ChallengeID:   Challenge1.ID,
		UserID:        User2.ID,
		PhotoURL:      "https://cdn.png.fun/pngfun/user2/2.jpg",
		VoteCount:     2,
		TotalWLDVoted: decimal.RequireFromString("3.25"),
		Verified:      true,
	}

	Submission3 = &entity.Submission{
		Base:        entity.Base{ID: "submission3", CreatedAt: time.Now().Add(-25 * time.Hour)},
		ChallengeID: Challenge2.ID,
		UserID:      User3.ID,
		PhotoURL:    "https://cdn.png.fun/pngfun/user3/3.jpg",
		Verified:    true,
	}

	Submissions = []*entity.Submission{Submission1, Submission2, Submission3}

	// Votes
	Vote1 = &entity.Vote{
		Base:         entity.Base{ID: "vote1", CreatedAt: time.Now().Add(-30 * time.Minute)},
		SubmissionID: Submission1.ID,
		VoterID:      User2.ID,
		WLDAmount:    decimal.RequireFromString("0.5"),
		Status:       entity.VoteActive,
	}

	Vote2 = &entity.Vote{
		Base:         entity.Base{ID: "vote2", CreatedAt: time.Now().Add(-20 * time.Minute)},
		SubmissionID: Submission2.ID,
		VoterID:      User1.ID,
		WLDAmount:    decimal.NewFromInt(3),
		Status:       entity.VoteActive,
		TxHash:       sql.NullString{Valid: true, String: "0x" + "ab" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"},
	}

	Vote3 = &entity.Vote{
		Base:         entity.Base{ID: "vote3", CreatedAt: time.Now().Add(-10 * time.Minute)},
		SubmissionID: Submission2.ID,
		VoterID:      User3.ID,
		WLDAmount:    decimal.RequireFromString("0.25"),
		Status:       entity.VoteActive,
	}

	Votes = []*entity.Vote{Vote1, Vote2, Vote3}
)

// CreateFixtureDb inserts copies of the fixtures into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertChallenges(ctx)
	InsertSubmissions(ctx)
	InsertVotes(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertChallenges(ctx context.Context) {
	challengeRepo := repository.NewChallengeRepository()
	for _, c := range Challenges {
		challenge := *c
		if err := challengeRepo.Create(ctx, &challenge); err != nil {
			panic(err)
		}
	}
}

func InsertSubmissions(ctx context.Context) {
	submissionRepo := repository.NewSubmissionRepository()
	for _, s := range Submissions {
		submission := *s
		if err := submissionRepo.Create(ctx, &submission); err != nil {
			panic(err)
		}
	}
}

func InsertVotes(ctx context.Context) {
	voteRepo := repository.NewVoteRepository()
	for _, v := range Votes {
		vote := *v
		if err := voteRepo.Create(ctx, &vote); err != nil {
			panic(err)
		}
	}
}
