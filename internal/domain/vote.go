package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/enum"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/ethutil"
	"github.com/pngfun/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteDomain interface {
	Create(context.Context, *model.CreateVoteRequest) (*model.CreateVoteResponse, error)
	GetList(context.Context, *model.GetListVoteRequest) (*model.GetListVoteResponse, error)
}

type voteDomain struct {
	voteRepo       repository.VoteRepository
	submissionRepo repository.SubmissionRepository
}

func NewVoteDomain(
	voteRepo repository.VoteRepository,
	submissionRepo repository.SubmissionRepository,
) *voteDomain {
	return &voteDomain{
		voteRepo:       voteRepo,
		submissionRepo: submissionRepo,
	}
}

func (d *voteDomain) Create(
	ctx context.Context, req *model.CreateVoteRequest,
) (*model.CreateVoteResponse, error) {
	if req.SubmissionID == "" || req.VoterID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	if !req.WLDAmount.IsPositive() {
		return nil, errorx.New(errorx.BadRequest, "WLD amount must be greater than 0")
	}

	if !req.WLDAmount.FitsColumn() {
		return nil, errorx.New(errorx.BadRequest,
			"WLD amount must be below 1e18 with at most %d decimals", model.AmountScale)
	}

	if req.TransactionID != "" && !ethutil.IsTxHash(req.TransactionID) {
		return nil, errorx.New(errorx.BadRequest, "Invalid transaction id")
	}

	if _, err := d.submissionRepo.GetByID(ctx, req.SubmissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Submission not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	vote := &entity.Vote{
		Base:             entity.Base{ID: uuid.NewString()},
		SubmissionID:     req.SubmissionID,
		VoterID:          req.VoterID,
		WLDAmount:        req.WLDAmount.Decimal,
		Status:           entity.VoteActive,
		PaymentReference: sql.NullString{Valid: req.PaymentReference != "", String: req.PaymentReference},
		TxHash:           sql.NullString{Valid: req.TransactionID != "", String: req.TransactionID},
	}

	if err := d.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You have already voted on this submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot create vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateVoteResponse{Vote: model.ConvertVote(vote)}, nil
}

func (d *voteDomain) GetList(
	ctx context.Context, req *model.GetListVoteRequest,
) (*model.GetListVoteResponse, error) {
	filter := repository.VoteFilter{
		VoterID:      req.VoterID,
		SubmissionID: req.SubmissionID,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.VoteStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid vote status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
		filter.Status = []entity.VoteStatus{status}
	}

	votes, err := d.voteRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of votes: %v", err)
		return nil, errorx.Unknown
	}

	clientVotes := []model.Vote{}
	for i := range votes {
		clientVotes = append(clientVotes, model.ConvertVote(&votes[i]))
	}

	return &model.GetListVoteResponse{Votes: clientVotes}, nil
}
