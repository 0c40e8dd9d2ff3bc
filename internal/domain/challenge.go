package domain

import (
	"context"
	"errors"
	"time"

	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ChallengeDomain interface {
	GetActive(context.Context, *model.GetActiveChallengeRequest) (*model.GetActiveChallengeResponse, error)
	Get(context.Context, *model.GetChallengeRequest) (*model.GetChallengeResponse, error)
}

type challengeDomain struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
	}
}

func (d *challengeDomain) GetActive(
	ctx context.Context, req *model.GetActiveChallengeRequest,
) (*model.GetActiveChallengeResponse, error) {
	challenge, err := d.challengeRepo.GetActive(ctx, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetActiveChallengeResponse{Message: "No active challenge"}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.ConvertChallenge(challenge, d.prizePool(ctx, challenge.ID))
	return &model.GetActiveChallengeResponse{Challenge: &resp}, nil
}

func (d *challengeDomain) Get(
	ctx context.Context, req *model.GetChallengeRequest,
) (*model.GetChallengeResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Challenge ID required")
	}

	challenge, err := d.challengeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Challenge not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetChallengeResponse{
		Challenge: model.ConvertChallenge(challenge, d.prizePool(ctx, challenge.ID)),
	}, nil
}

// prizePool never fails the request. A broken sum is reported as an empty
// pool.
func (d *challengeDomain) prizePool(ctx context.Context, challengeID string) decimal.Decimal {
	pool, err := d.submissionRepo.SumWLDVoted(ctx, challengeID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot sum prize pool of challenge %s: %v", challengeID, err)
		return decimal.Zero
	}

	return pool
}
