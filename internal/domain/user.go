package domain

import (
	"context"
	"errors"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/ethutil"
	"github.com/pngfun/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetByUsername(context.Context, *model.GetUserByUsernameRequest) (*model.GetUserByUsernameResponse, error)
	CheckSession(context.Context, *model.CheckSessionRequest) (*model.CheckSessionResponse, error)
	CheckWorldAppUser(context.Context, *model.CheckWorldAppUserRequest) (*model.CheckWorldAppUserResponse, error)
	CompleteOnboarding(context.Context, *model.CompleteOnboardingRequest) (*model.CompleteOnboardingResponse, error)
	GetConfig(context.Context, *model.GetConfigRequest) (*model.GetConfigResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.getUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetByUsername(
	ctx context.Context, req *model.GetUserByUsernameRequest,
) (*model.GetUserByUsernameResponse, error) {
	if req.Username == "" {
		return nil, errorx.New(errorx.BadRequest, "Username required")
	}

	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserByUsernameResponse{User: model.ConvertUser(user)}, nil
}

// CheckSession looks up the user the World App reports. It never fails, a
// lookup error means there is no session.
func (d *userDomain) CheckSession(
	ctx context.Context, req *model.CheckSessionRequest,
) (*model.CheckSessionResponse, error) {
	if req.MiniKitUser == nil {
		return &model.CheckSessionResponse{HasSession: false}, nil
	}

	var user *entity.User
	var err error
	switch {
	case req.MiniKitUser.WalletAddress != "":
		user, err = d.userRepo.GetByWalletAddress(ctx, ethutil.NormalizeAddress(req.MiniKitUser.WalletAddress))
	case req.MiniKitUser.Username != "":
		user, err = d.userRepo.GetByUsername(ctx, req.MiniKitUser.Username)
	default:
		return &model.CheckSessionResponse{HasSession: false}, nil
	}

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot check session: %v", err)
		}
		return &model.CheckSessionResponse{HasSession: false}, nil
	}

	clientUser := model.ConvertUser(user)
	return &model.CheckSessionResponse{User: &clientUser, HasSession: true}, nil
}

func (d *userDomain) CheckWorldAppUser(
	ctx context.Context, req *model.CheckWorldAppUserRequest,
) (*model.CheckWorldAppUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return &model.CheckWorldAppUserResponse{HasUser: false}, nil
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot check world app user: %v", err)
		}
		return &model.CheckWorldAppUserResponse{HasUser: false}, nil
	}

	if !user.OnboardingCompleted {
		return &model.CheckWorldAppUserResponse{HasUser: false}, nil
	}

	clientUser := model.ConvertUser(user)
	return &model.CheckWorldAppUserResponse{HasUser: true, User: &clientUser}, nil
}

func (d *userDomain) CompleteOnboarding(
	ctx context.Context, req *model.CompleteOnboardingRequest,
) (*model.CompleteOnboardingResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.getUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := d.userRepo.CompleteOnboarding(ctx, userID, req.NotificationsEnabled); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete onboarding: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.CompleteOnboardingResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetConfig(ctx context.Context, req *model.GetConfigRequest) (*model.GetConfigResponse, error) {
	cfg := xcontext.Configs(ctx)
	return &model.GetConfigResponse{
		Network:   cfg.Network.Name,
		AppID:     cfg.WorldID.AppID,
		Contracts: cfg.Network.Contracts(),
	}, nil
}

func (d *userDomain) getUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
