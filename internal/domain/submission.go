package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/storage"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubmissionDomain interface {
	Create(context.Context, *model.CreateSubmissionRequest) (*model.CreateSubmissionResponse, error)
	GetList(context.Context, *model.GetListSubmissionRequest) (*model.GetListSubmissionResponse, error)
	Check(context.Context, *model.CheckSubmissionRequest) (*model.CheckSubmissionResponse, error)
}

type submissionDomain struct {
	submissionRepo repository.SubmissionRepository
	challengeRepo  repository.ChallengeRepository
	userRepo       repository.UserRepository
	storage        storage.Storage
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	challengeRepo repository.ChallengeRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo: submissionRepo,
		challengeRepo:  challengeRepo,
		userRepo:       userRepo,
		storage:        storage,
	}
}

func (d *submissionDomain) Create(
	ctx context.Context, req *model.CreateSubmissionRequest,
) (*model.CreateSubmissionResponse, error) {
	if req.ChallengeID == "" || req.UserID == "" || req.PhotoData == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	_, err := d.submissionRepo.GetByUserAndChallenge(ctx, req.UserID, req.ChallengeID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already submitted to this challenge")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing submission: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.challengeRepo.GetByID(ctx, req.ChallengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Challenge not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	photo, err := common.ProcessPhoto(ctx, d.storage, req.UserID, req.PhotoData)
	if err != nil {
		return nil, err
	}

	submission := &entity.Submission{
		Base:          entity.Base{ID: uuid.NewString()},
		ChallengeID:   req.ChallengeID,
		UserID:        req.UserID,
		PhotoURL:      photo.Url,
		TotalWLDVoted: decimal.Zero,
		Verified:      true,
	}

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You have already submitted to this challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	submission.User = *user
	return &model.CreateSubmissionResponse{Submission: model.ConvertSubmission(submission)}, nil
}

func (d *submissionDomain) GetList(
	ctx context.Context, req *model.GetListSubmissionRequest,
) (*model.GetListSubmissionResponse, error) {
	if req.ChallengeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Challenge ID required")
	}

	submissions, err := d.submissionRepo.GetListByChallengeID(ctx, req.ChallengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of submissions: %v", err)
		return nil, errorx.Unknown
	}

	clientSubmissions := []model.Submission{}
	for i := range submissions {
		clientSubmissions = append(clientSubmissions, model.ConvertSubmission(&submissions[i]))
	}

	return &model.GetListSubmissionResponse{Submissions: clientSubmissions}, nil
}

func (d *submissionDomain) Check(
	ctx context.Context, req *model.CheckSubmissionRequest,
) (*model.CheckSubmissionResponse, error) {
	if req.UserID == "" || req.ChallengeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	submission, err := d.submissionRepo.GetByUserAndChallenge(ctx, req.UserID, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.CheckSubmissionResponse{Exists: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	clientSubmission := model.ConvertSubmission(submission)
	return &model.CheckSubmissionResponse{Exists: true, Submission: &clientSubmission}, nil
}
