package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/crypto"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/ethutil"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// nonceBytes gives the 32 hex characters of a sign-in nonce.
const nonceBytes = 16

type AuthDomain interface {
	GetNonce(context.Context, *model.GetNonceRequest) (*model.GetNonceResponse, error)
	CompleteSIWE(context.Context, *model.CompleteSIWERequest) (*model.CompleteSIWEResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (d *authDomain) GetNonce(
	ctx context.Context, req *model.GetNonceRequest,
) (*model.GetNonceResponse, error) {
	nonce, err := crypto.GenerateNonce(nonceBytes)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetNonceResponse{Nonce: nonce}, nil
}

func (d *authDomain) CompleteSIWE(
	ctx context.Context, req *model.CompleteSIWERequest,
) (*model.CompleteSIWEResponse, error) {
	// The router already removed the nonce from the session, so it can not be
	// replayed whatever happens below.
	if req.SessionNonce == "" || req.Nonce != req.SessionNonce {
		return nil, errorx.New(errorx.BadRequest, "Invalid nonce")
	}

	if !ethutil.IsAddress(req.Payload.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	message, err := ethutil.ParseSIWEMessage(req.Payload.Message)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse siwe message: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	if err := message.Validate(req.Payload.Address, req.Nonce, d.now()); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid siwe message: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	err = ethutil.VerifyPersonalSign(req.Payload.Message, req.Payload.Signature, req.Payload.Address)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify siwe signature: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	user, err := d.userRepo.Upsert(ctx, &entity.User{
		Base:              entity.Base{ID: uuid.NewString()},
		WalletAddress:     ethutil.NormalizeAddress(req.Payload.Address),
		Username:          sql.NullString{Valid: req.Username != "", String: req.Username},
		ProfilePictureURL: req.ProfilePictureURL,
		TotalWLDEarned:    decimal.Zero,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Username is already taken")
		}

		xcontext.Logger(ctx).Errorf("Cannot upsert user: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Auth.SessionToken
	sessionToken, err := xcontext.TokenEngine(ctx).Generate(cfg.Expiration, model.SessionToken{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate session token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteSIWEResponse{
		Status:       "success",
		IsValid:      true,
		Address:      user.WalletAddress,
		SessionToken: sessionToken,
	}, nil
}
